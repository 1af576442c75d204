package transaction

// PaymentType is the instrument used to pay.
type PaymentType string

const (
	PaymentCreditCard    PaymentType = "credit_card"
	PaymentDebitCard     PaymentType = "debit_card"
	PaymentTransportCard PaymentType = "transport_card"
	PaymentMobilePay     PaymentType = "mobile_pay"
	PaymentCash          PaymentType = "cash"
)

// PaymentTypes lists every accepted payment type in display order.
var PaymentTypes = []PaymentType{
	PaymentCreditCard,
	PaymentDebitCard,
	PaymentTransportCard,
	PaymentMobilePay,
	PaymentCash,
}

// Channel is the point-of-sale medium of a transaction.
type Channel string

const (
	ChannelOffline Channel = "offline"
	ChannelOnline  Channel = "online"
	ChannelApp     Channel = "app"
	ChannelKiosk   Channel = "kiosk"
)

// Channels lists every accepted channel in display order.
var Channels = []Channel{
	ChannelOffline,
	ChannelOnline,
	ChannelApp,
	ChannelKiosk,
}

// Transaction is one validated spending record.
type Transaction struct {
	Date        string      `json:"date" yaml:"date" validate:"required,yyyymmdd"`
	Time        string      `json:"time" yaml:"time" validate:"required,hhmm"`
	Merchant    string      `json:"merchant" yaml:"merchant" validate:"required"`
	Memo        string      `json:"memo" yaml:"memo"`
	AmountKRW   float64     `json:"amount_krw" yaml:"amount_krw" validate:"gt=0"`
	PaymentType PaymentType `json:"payment_type" yaml:"payment_type" validate:"required,oneof=credit_card debit_card transport_card mobile_pay cash"`
	City        string      `json:"city" yaml:"city" validate:"required"`
	Channel     Channel     `json:"channel" yaml:"channel" validate:"required,oneof=offline online app kiosk"`
}

// Record is one untyped candidate row as produced by a parser or a form.
// Fields may be missing, wrong-typed or extra.
type Record = map[string]any

// ToRecord converts a transaction back into its untyped form.
func (t Transaction) ToRecord() Record {
	return Record{
		FieldDate:        t.Date,
		FieldTime:        t.Time,
		FieldMerchant:    t.Merchant,
		FieldMemo:        t.Memo,
		FieldAmountKRW:   t.AmountKRW,
		FieldPaymentType: string(t.PaymentType),
		FieldCity:        t.City,
		FieldChannel:     string(t.Channel),
	}
}

// Field names as they appear in CSV headers, JSON keys and error messages.
const (
	FieldDate        = "date"
	FieldTime        = "time"
	FieldMerchant    = "merchant"
	FieldMemo        = "memo"
	FieldAmountKRW   = "amount_krw"
	FieldPaymentType = "payment_type"
	FieldCity        = "city"
	FieldChannel     = "channel"
)

// Fields is the canonical field order. Error messages follow it.
var Fields = []string{
	FieldDate,
	FieldTime,
	FieldMerchant,
	FieldMemo,
	FieldAmountKRW,
	FieldPaymentType,
	FieldCity,
	FieldChannel,
}
