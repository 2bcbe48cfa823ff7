package domain

import "time"

// Installment is one scheduled payment of a contract
type Installment struct {
	ID          string
	PaymentNr   int
	DueDate     time.Time // zero when the document has none
	Amount      Money
	IsPaid      bool
	Transaction *TransactionInfo
}

// TransactionInfo describes a payment made for a contract or installment
type TransactionInfo struct {
	ID              string
	Type            string // CASH, WALLET, MOYSAR_PAYMENT
	Status          string
	PaymentMethod   string
	TotalAmount     Money
	PaidWithPayment Money
	PaidWithWallet  Money
}

// Pay marks the installment as paid by the given transaction
func (i *Installment) Pay(tx TransactionInfo) {
	i.IsPaid = true
	i.Transaction = &tx
}

// IsDue returns true if the installment is unpaid and past its due date
func (i *Installment) IsDue(now time.Time) bool {
	return !i.IsPaid && !i.DueDate.IsZero() && now.After(i.DueDate)
}
