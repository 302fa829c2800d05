package entity

import "time"

// TransactionRecord is the audit copy of a submitted transaction.
// It holds the posted form fields, which never include the signing secret.
type TransactionRecord struct {
	OrderId       string            `json:"order_id" bson:"order_id"`
	InvoiceNumber string            `json:"invoice_number" bson:"invoice_number"`
	Amount        float64           `json:"amount" bson:"amount"`
	Currency      string            `json:"currency" bson:"currency"`
	VendorId      string            `json:"vendor_id" bson:"vendor_id"`
	Live          bool              `json:"live" bson:"live"`
	Fields        map[string]string `json:"fields" bson:"fields"`
	StatusCode    int               `json:"status_code" bson:"status_code"`
	Error         string            `json:"error,omitempty" bson:"error,omitempty"`
	Time          time.Time         `json:"time" bson:"time"`
}

func (t *TransactionRecord) DataType() string {
	return "transaction"
}

// Notification is a callback received from the gateway, stored verbatim.
type Notification struct {
	OrderId string            `json:"order_id" bson:"order_id"`
	Params  map[string]string `json:"params" bson:"params"`
	Remote  string            `json:"remote" bson:"remote"`
	Time    time.Time         `json:"time" bson:"time"`
}

func (n *Notification) DataType() string {
	return "notification"
}

// LogMessage is a log line persisted by the logger when a database is attached.
type LogMessage struct {
	Time     time.Time `json:"time" bson:"time"`
	Level    string    `json:"level" bson:"level"`
	Category string    `json:"category" bson:"category"`
	Text     string    `json:"text" bson:"text"`
}

func (l *LogMessage) DataType() string {
	return "log"
}
