package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"
)

func newReserveCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "reserve EVENT_ID",
		Short: "Reserve the first available seat of an event",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			if _, err := a.requireUser(cmd.Context()); err != nil {
				return err
			}
			b, err := a.reservations.ReserveByID(cmd.Context(), id)
			if err != nil {
				return err
			}
			fmt.Fprintf(a.out, "booking %d: seat %d (%s)\n", b.ID, b.SeatID, b.Status)
			return nil
		},
	}
}

func newCancelCommand(a *app) *cobra.Command {
	var bookingID int64
	cmd := &cobra.Command{
		Use:   "cancel [EVENT_ID]",
		Short: "Cancel your booking for an event, or a booking by id",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			if bookingID == 0 && len(args) == 0 {
				return fmt.Errorf("an EVENT_ID or --booking is required")
			}
			if _, err := a.requireUser(ctx); err != nil {
				return err
			}
			if bookingID != 0 {
				b, err := a.reservations.Cancel(ctx, bookingID)
				if err != nil {
					return err
				}
				fmt.Fprintf(a.out, "booking %d %s\n", b.ID, b.Status)
				return nil
			}
			eventID, err := parseID(args[0])
			if err != nil {
				return err
			}
			b, err := a.reservations.CancelForEvent(ctx, eventID)
			if err != nil {
				return err
			}
			fmt.Fprintf(a.out, "booking %d %s\n", b.ID, b.Status)
			return nil
		},
	}
	cmd.Flags().Int64Var(&bookingID, "booking", 0, "booking id to cancel")
	return cmd
}

func newHistoryCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "history",
		Short: "List your bookings, newest first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if _, err := a.requireUser(cmd.Context()); err != nil {
				return err
			}
			bookings, err := a.reservations.History(cmd.Context())
			if err != nil {
				return err
			}
			w := tabwriter.NewWriter(a.out, 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "ID\tEVENT\tSEAT\tSTATUS\tCREATED")
			for _, b := range bookings {
				title := fmt.Sprint(b.EventID)
				if b.Event != nil {
					title = b.Event.Title
				}
				fmt.Fprintf(w, "%d\t%s\t%d\t%s\t%s\n", b.ID, title, b.SeatID, b.Status, b.CreatedAt.Format("2006-01-02 15:04"))
			}
			return w.Flush()
		},
	}
}

func newStatsCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "stats",
		Short: "Show dashboard totals (admin)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if _, err := a.requireAdmin(cmd.Context()); err != nil {
				return err
			}
			s, err := a.dashboard.Stats(cmd.Context())
			if err != nil {
				return err
			}
			fmt.Fprintf(a.out, "events: %d\nseats: %d booked of %d\nbookings: %d (%d cancelled)\n",
				s.Events, s.BookedSeats, s.TotalSeats, s.Bookings, s.CancelledBookings)
			return nil
		},
	}
}
