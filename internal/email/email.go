package email

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/Domenick1991/flightdesk/internal/kafka"
)

// Sender writes confirmation mails to out. There is no SMTP relay; the line
// stands in for the message.
type Sender struct {
	out io.Writer
}

func NewSender() *Sender {
	return &Sender{out: os.Stdout}
}

func NewSenderTo(out io.Writer) *Sender {
	return &Sender{out: out}
}

func (s *Sender) Send(ctx context.Context, event kafka.BookingEvent) error {
	if event.Email == "" {
		return fmt.Errorf("booking %s has no recipient", event.BookingID)
	}
	_, err := fmt.Fprintf(s.out, "send email to %s: booking %s confirmed, %s to %s on %s, %d passenger(s), total %d\n",
		event.Email, event.BookingID, event.From, event.To,
		event.DepartureDate.Format("2006-01-02 15:04"), event.Passengers, event.TotalAmount)
	return err
}
