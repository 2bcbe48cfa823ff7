package domain

import "time"

// Clone returns a deep copy of the car
func (c *Car) Clone() *Car {
	if c == nil {
		return nil
	}
	out := *c
	out.WeeklyRate = cloneMoneyPtr(c.WeeklyRate)
	out.MonthlyRate = cloneMoneyPtr(c.MonthlyRate)
	out.Features = append([]string(nil), c.Features...)
	out.LastServiceDate = cloneTimePtr(c.LastServiceDate)
	out.NextServiceDate = cloneTimePtr(c.NextServiceDate)
	out.Source = c.Source.Clone()
	return &out
}

// Clone returns a deep copy of the user
func (u *User) Clone() *User {
	if u == nil {
		return nil
	}
	out := *u
	out.Source = u.Source.Clone()
	return &out
}

// Clone returns a deep copy of the contract
func (c *Contract) Clone() *Contract {
	if c == nil {
		return nil
	}
	out := *c
	out.BookingDetails = CloneMap(c.BookingDetails)
	out.Extensions = append([]Extension(nil), c.Extensions...)
	if c.Transaction != nil {
		tx := *c.Transaction
		out.Transaction = &tx
	}
	if c.Installments != nil {
		out.Installments = make([]Installment, len(c.Installments))
		for i, inst := range c.Installments {
			if inst.Transaction != nil {
				tx := *inst.Transaction
				inst.Transaction = &tx
			}
			out.Installments[i] = inst
		}
	}
	out.Source = c.Source.Clone()
	return &out
}

func cloneMoneyPtr(m *Money) *Money {
	if m == nil {
		return nil
	}
	v := *m
	return &v
}

func cloneTimePtr(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	v := *t
	return &v
}
