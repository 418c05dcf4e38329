package billing

import (
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// NoChargeBody is the body sent when no service has a non-zero amount
const NoChargeBody = "No charge this period at present."

// amountPlaces is the number of fraction digits shown for every amount
const amountPlaces = 2

// TotalBilling is the total amortized cost for a period, in USD
type TotalBilling struct {
	Start  time.Time
	End    time.Time // exclusive
	Amount decimal.Decimal
}

// ServiceBilling is the amortized cost of a single service for the same period
type ServiceBilling struct {
	ServiceName string
	Amount      decimal.Decimal
}

// Message is a notification ready to be delivered
type Message struct {
	Title string
	Body  string
}

// Formatter builds notification messages. Provider is the label shown at the
// start of the title.
type Formatter struct {
	Provider string
}

// FormatMessage builds the message for AWS billing results
func FormatMessage(total TotalBilling, services []ServiceBilling) Message {
	return Formatter{Provider: "AWS"}.Format(total, services)
}

// Format builds the title and body for the given results.
//
// The title shows the inclusive date range, so the displayed end is the day
// before total.End. Services whose amount rounds to zero are left out and the
// remaining lines keep their input order.
func (f Formatter) Format(total TotalBilling, services []ServiceBilling) Message {
	title := fmt.Sprintf("%s Billing Notification (%s～%s) : %s USD",
		f.Provider,
		total.Start.Format("01/02"),
		total.End.AddDate(0, 0, -1).Format("01/02"),
		FormatAmount(total.Amount))

	lines := make([]string, 0, len(services))
	for _, s := range services {
		if s.Amount.Round(amountPlaces).IsZero() {
			continue
		}
		lines = append(lines, fmt.Sprintf("・%s: %s USD", s.ServiceName, FormatAmount(s.Amount)))
	}

	if len(lines) == 0 {
		return Message{Title: title, Body: NoChargeBody}
	}

	return Message{Title: title, Body: strings.Join(lines, "\n")}
}

// FormatAmount renders an amount with exactly two fraction digits, rounding
// half away from zero
func FormatAmount(d decimal.Decimal) string {
	return d.StringFixed(amountPlaces)
}
