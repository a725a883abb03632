package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/spec-kit/concert-frontend/internal/api/dto"
	"github.com/spec-kit/concert-frontend/internal/domain"
)

func newEventsCommand(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "events",
		Short: "List and manage events",
	}
	cmd.AddCommand(
		newEventsListCommand(a),
		newEventsShowCommand(a),
		newEventsSeatsCommand(a),
		newEventsCreateCommand(a),
		newEventsDeleteCommand(a),
	)
	return cmd
}

func newEventsListCommand(a *app) *cobra.Command {
	var q dto.EventQuery
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List events",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			res, err := a.client.Events.GetAll(cmd.Context(), q)
			if err != nil {
				return err
			}
			w := tabwriter.NewWriter(a.out, 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "ID\tTITLE\tSEATS\tSTATUS")
			for _, e := range res.Data {
				fmt.Fprintf(w, "%d\t%s\t%s\t%s\n", e.ID, e.Title, seatSummary(e), e.Status)
			}
			if err := w.Flush(); err != nil {
				return err
			}
			fmt.Fprintf(a.out, "page %d/%d, %d events\n", res.Meta.Page, res.Meta.TotalPages, res.Meta.Total)
			return nil
		},
	}
	cmd.Flags().IntVar(&q.Page, "page", 0, "page number")
	cmd.Flags().IntVar(&q.Limit, "limit", 0, "page size")
	cmd.Flags().StringVar(&q.Search, "search", "", "title search")
	cmd.Flags().StringVar(&q.Status, "status", "", "event status filter")
	return cmd
}

func newEventsShowCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "show EVENT_ID",
		Short: "Show one event",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			e, err := a.client.Events.GetByID(cmd.Context(), id)
			if err != nil {
				return err
			}
			fmt.Fprintf(a.out, "%s\n%s\nseats: %s\nstatus: %s\n", e.Title, e.Description, seatSummary(*e), e.Status)
			return nil
		},
	}
}

func newEventsSeatsCommand(a *app) *cobra.Command {
	var status string
	cmd := &cobra.Command{
		Use:   "seats EVENT_ID",
		Short: "List the seats of an event",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			seats, err := a.client.Events.GetSeats(cmd.Context(), id, domain.SeatStatus(status))
			if err != nil {
				return err
			}
			w := tabwriter.NewWriter(a.out, 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "ID\tSECTION\tROW\tNUMBER\tSTATUS")
			for _, s := range seats {
				fmt.Fprintf(w, "%d\t%s\t%s\t%s\t%s\n", s.ID, s.Section, s.Row, s.Number, s.Status)
			}
			return w.Flush()
		},
	}
	cmd.Flags().StringVar(&status, "status", "", "seat status filter (available, reserved)")
	return cmd
}

func newEventsCreateCommand(a *app) *cobra.Command {
	var req dto.CreateEventRequest
	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create an event (admin)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if _, err := a.requireAdmin(cmd.Context()); err != nil {
				return err
			}
			e, err := a.dashboard.CreateEvent(cmd.Context(), req)
			if err != nil {
				return err
			}
			fmt.Fprintf(a.out, "created event %d\n", e.ID)
			return nil
		},
	}
	cmd.Flags().StringVar(&req.Title, "title", "", "event title")
	cmd.Flags().StringVar(&req.Description, "description", "", "event description")
	cmd.Flags().StringVar(&req.ImageURL, "image", "", "image URL")
	cmd.Flags().IntVar(&req.TotalSeats, "seats", 0, "total seats")
	return cmd
}

func newEventsDeleteCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "delete EVENT_ID",
		Short: "Delete an event (admin)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			if _, err := a.requireAdmin(cmd.Context()); err != nil {
				return err
			}
			if err := a.dashboard.DeleteEvent(cmd.Context(), id); err != nil {
				return err
			}
			fmt.Fprintf(a.out, "deleted event %d\n", id)
			return nil
		},
	}
}

func seatSummary(e domain.Event) string {
	if e.SoldOut() {
		return fmt.Sprintf("0/%d (sold out)", e.TotalSeats)
	}
	return fmt.Sprintf("%d/%d", e.AvailableSeats, e.TotalSeats)
}
