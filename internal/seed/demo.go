package seed

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/najmus-sakib-hossain/e-club-latest-project-sub000/pkg/callback"
	"github.com/najmus-sakib-hossain/e-club-latest-project-sub000/pkg/meeting"
)

// demoMeeting describes a sample booking relative to today.
type demoMeeting struct {
	req       meeting.CreateRequest
	dayOffset int
	status    meeting.Status
}

func strPtr(s string) *string { return &s }

var demoMeetings = []demoMeeting{
	{meeting.CreateRequest{Name: "Nadia Rahman", Email: "nadia@example.com", Phone: "+8801711000001", MeetingType: "showroom", Purpose: "Living room sofa set", Time: "11:00"}, 1, meeting.StatusPending},
	{meeting.CreateRequest{Name: "Tanvir Ahmed", Email: "tanvir@example.com", Phone: "+8801711000002", MeetingType: "video", Purpose: "Office chairs for 12 seats", Notes: strPtr("Needs invoice with VAT"), Time: "15:30"}, 2, meeting.StatusConfirmed},
	{meeting.CreateRequest{Name: "Farhana Islam", Email: "farhana@example.com", Phone: "+8801711000003", MeetingType: "showroom", Purpose: "Bedroom wardrobe", Time: "17:00"}, 0, meeting.StatusConfirmed},
	{meeting.CreateRequest{Name: "Rafiq Hasan", Email: "rafiq@example.com", Phone: "+8801711000004", MeetingType: "video", Purpose: "Dining table sizing", Time: "12:00"}, -3, meeting.StatusCompleted},
	{meeting.CreateRequest{Name: "Sadia Chowdhury", Email: "sadia@example.com", Phone: "+8801711000005", MeetingType: "showroom", Purpose: "Kids room", Time: "10:30"}, -1, meeting.StatusCancelled},
}

var demoCallbacks = []struct {
	req    callback.CreateRequest
	status callback.Status
}{
	{callback.CreateRequest{Name: "Mahmud Karim", Phone: "+8801811000001", PreferredTime: "morning", Reason: "Delivery date"}, callback.StatusPending},
	{callback.CreateRequest{Name: "Ayesha Siddiqua", Phone: "+8801811000002", PreferredTime: "evening", Reason: "Warranty claim", Notes: strPtr("Order #1042")}, callback.StatusNoAnswer},
	{callback.CreateRequest{Name: "Imran Khan", Phone: "+8801811000003", PreferredTime: "afternoon", Reason: "Bulk order discount"}, callback.StatusCalled},
	{callback.CreateRequest{Name: "Shirin Akter", Phone: "+8801811000004", PreferredTime: "anytime", Reason: "Assembly service"}, callback.StatusCompleted},
}

// RunDemo replaces every meeting and callback request with sample data
// spread around today's date. It is destructive.
func RunDemo(ctx context.Context, pool *pgxpool.Pool, logger *slog.Logger, adminEmail, adminPassword string) error {
	if err := Run(ctx, pool, logger, adminEmail, adminPassword); err != nil {
		return err
	}

	today := time.Now()
	return pgx.BeginFunc(ctx, pool, func(tx pgx.Tx) error {
		if _, err := tx.Exec(ctx, `TRUNCATE meetings, callback_requests`); err != nil {
			return fmt.Errorf("clearing demo tables: %w", err)
		}

		meetings := meeting.NewStore(tx)
		for _, d := range demoMeetings {
			req := d.req
			req.Date = today.AddDate(0, 0, d.dayOffset).Format("2006-01-02")
			m, err := meetings.Create(ctx, req)
			if err != nil {
				return fmt.Errorf("creating demo meeting for %s: %w", req.Name, err)
			}
			if d.status != meeting.StatusPending {
				if _, err := meetings.UpdateStatus(ctx, m.ID, d.status, nil); err != nil {
					return fmt.Errorf("setting demo meeting status: %w", err)
				}
			}
		}

		callbacks := callback.NewStore(tx)
		for _, d := range demoCallbacks {
			r, err := callbacks.Create(ctx, d.req)
			if err != nil {
				return fmt.Errorf("creating demo callback for %s: %w", d.req.Name, err)
			}
			if d.status != callback.StatusPending {
				if _, err := callbacks.UpdateStatus(ctx, r.ID, d.status, nil); err != nil {
					return fmt.Errorf("setting demo callback status: %w", err)
				}
			}
		}

		logger.Info("seed-demo: sample data written",
			"meetings", len(demoMeetings),
			"callbacks", len(demoCallbacks),
		)
		return nil
	})
}
