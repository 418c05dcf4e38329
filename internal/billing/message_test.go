package billing

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func amount(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func juneTotal(s string) TotalBilling {
	return TotalBilling{
		Start:  date(2024, time.June, 1),
		End:    date(2024, time.July, 1),
		Amount: amount(s),
	}
}

func TestFormatMessage_Title(t *testing.T) {
	msg := FormatMessage(juneTotal("1234.5"), nil)

	assert.Equal(t, "AWS Billing Notification (06/01～06/30) : 1234.50 USD", msg.Title)
}

func TestFormatMessage_TitleMidMonth(t *testing.T) {
	total := TotalBilling{
		Start:  date(2024, time.July, 1),
		End:    date(2024, time.July, 15),
		Amount: amount("0"),
	}

	msg := FormatMessage(total, nil)

	assert.Equal(t, "AWS Billing Notification (07/01～07/14) : 0.00 USD", msg.Title)
}

func TestFormatMessage_SkipsZeroServices(t *testing.T) {
	services := []ServiceBilling{
		{ServiceName: "EC2", Amount: amount("10.004")},
		{ServiceName: "S3", Amount: amount("0.0")},
		{ServiceName: "Lambda", Amount: amount("0")},
	}

	msg := FormatMessage(juneTotal("10.004"), services)

	assert.Equal(t, "・EC2: 10.00 USD", msg.Body)
}

func TestFormatMessage_PreservesOrder(t *testing.T) {
	services := []ServiceBilling{
		{ServiceName: "Amazon Simple Storage Service", Amount: amount("1.5")},
		{ServiceName: "AWS Lambda", Amount: amount("0.0001")},
		{ServiceName: "Amazon Elastic Compute Cloud - Compute", Amount: amount("120.456")},
		{ServiceName: "Tax", Amount: amount("12.3")},
	}

	msg := FormatMessage(juneTotal("134.26"), services)

	want := "・Amazon Simple Storage Service: 1.50 USD\n" +
		"・Amazon Elastic Compute Cloud - Compute: 120.46 USD\n" +
		"・Tax: 12.30 USD"
	assert.Equal(t, want, msg.Body)
}

func TestFormatMessage_NoCharge(t *testing.T) {
	tests := []struct {
		name     string
		services []ServiceBilling
	}{
		{"nil services", nil},
		{"empty services", []ServiceBilling{}},
		{"all zero", []ServiceBilling{
			{ServiceName: "S3", Amount: amount("0.0")},
			{ServiceName: "Lambda", Amount: amount("0")},
		}},
		{"rounds to zero", []ServiceBilling{
			{ServiceName: "CloudWatch", Amount: amount("0.0049")},
			{ServiceName: "Credit", Amount: amount("-0.004")},
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			msg := FormatMessage(juneTotal("0"), tt.services)
			assert.Equal(t, "No charge this period at present.", msg.Body)
		})
	}
}

func TestFormatMessage_NegativeAmountShown(t *testing.T) {
	services := []ServiceBilling{{ServiceName: "Credits", Amount: amount("-5.5")}}

	msg := FormatMessage(juneTotal("-5.5"), services)

	assert.Equal(t, "・Credits: -5.50 USD", msg.Body)
	assert.Contains(t, msg.Title, ": -5.50 USD")
}

func TestFormatMessage_Idempotent(t *testing.T) {
	services := []ServiceBilling{
		{ServiceName: "EC2", Amount: amount("10.004")},
		{ServiceName: "S3", Amount: amount("0.0")},
	}
	total := juneTotal("10.004")

	first := FormatMessage(total, services)
	second := FormatMessage(total, services)

	assert.Equal(t, first, second)
	assert.Equal(t, "EC2", services[0].ServiceName, "input must not be modified")
}

func TestFormatAmount_RoundsHalfAwayFromZero(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"0.005", "0.01"},
		{"0.004", "0.00"},
		{"0.015", "0.02"},
		{"0.025", "0.03"},
		{"2.675", "2.68"},
		{"-0.005", "-0.01"},
		{"1234.5", "1234.50"},
		{"1234567.891", "1234567.89"},
		{"0", "0.00"},
		{"10.004", "10.00"},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, FormatAmount(amount(tt.in)))
		})
	}
}

func TestFormatter_ProviderLabel(t *testing.T) {
	msg := Formatter{Provider: "Azure"}.Format(juneTotal("3"), nil)

	assert.Equal(t, "Azure Billing Notification (06/01～06/30) : 3.00 USD", msg.Title)
}
