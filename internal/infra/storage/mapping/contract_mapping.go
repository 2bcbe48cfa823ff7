package mapping

import (
	"fmt"
	"reflect"
	"sort"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/d3coo/car-rental-fastapi-vite/internal/domain"
	"github.com/d3coo/car-rental-fastapi-vite/internal/infra/docstore"
)

// contractStatuses словарь статусов, которые встречаются в документах
var contractStatuses = map[string]domain.ContractStatus{
	"draft":     domain.ContractStatusDraft,
	"pending":   domain.ContractStatusDraft,
	"active":    domain.ContractStatusActive,
	"extended":  domain.ContractStatusActive,
	"completed": domain.ContractStatusCompleted,
	"finished":  domain.ContractStatusCompleted,
	"cancelled": domain.ContractStatusCancelled,
	"canceled":  domain.ContractStatusCancelled,
}

var bookingTypes = map[string]domain.BookingType{
	"day":     domain.BookingDay,
	"daily":   domain.BookingDay,
	"week":    domain.BookingWeek,
	"weekly":  domain.BookingWeek,
	"month":   domain.BookingMonth,
	"monthly": domain.BookingMonth,
}

type transactionRecord struct {
	reader          *reader
	ID              opt[string]
	Type            opt[string]
	Status          opt[string]
	PaymentMethod   opt[string]
	Total           opt[decimal.Decimal]
	PaidWithPayment opt[decimal.Decimal]
	PaidWithWallet  opt[decimal.Decimal]
}

type installmentRecord struct {
	reader      *reader
	ID          opt[string]
	PaymentNr   opt[int]
	DueDate     opt[time.Time]
	Amount      opt[decimal.Decimal]
	Paid        opt[bool]
	Transaction *transactionRecord
}

type extensionRecord struct {
	reader     *reader
	ExtendedAt opt[time.Time]
	NewEndDate opt[time.Time]
	Cost       opt[decimal.Decimal]
	Type       opt[string]
	Count      opt[int]
}

// contractRecord типизированное представление документа контракта
type contractRecord struct {
	UserID         opt[string]
	CarID          opt[string]
	OrderID        opt[string]
	ContractNumber opt[string]
	Status         opt[string]
	BookingType    opt[string]
	StartDate      opt[time.Time]
	EndDate        opt[time.Time]
	Total          opt[decimal.Decimal]
	Currency       opt[string]
	BookingDetails opt[map[string]any]
	Extended       opt[bool]
	Extensions     []extensionRecord
	Transaction    *transactionRecord
	Installments   []installmentRecord

	Cancelled opt[bool]
	Completed opt[bool]
}

func parseContract(r *reader) contractRecord {
	rec := contractRecord{
		UserID:         readField(r, contractUserID, toID, storeString),
		CarID:          readField(r, contractCarID, toID, storeString),
		OrderID:        readField(r, contractOrderID, toString, storeString),
		ContractNumber: readField(r, contractNumber, toString, storeString),
		Status:         readField[string](r, contractStatus, toString, nil),
		BookingType:    readField[string](r, contractBookingType, toString, nil),
		StartDate:      readField(r, contractStartDate, toTime, storeTime),
		EndDate:        readField(r, contractEndDate, toTime, storeTime),
		Total:          readField(r, contractTotal, toDecimal, storeDecimal),
		Currency:       readField[string](r, contractCurrency, toString, nil),
		BookingDetails: readField[map[string]any](r, contractBookingDetails, toObject, nil),
		Extended:       readField(r, contractExtended, toBool, storeBool),
		Cancelled:      peekField(r, contractCancelled, toBool),
		Completed:      peekField(r, contractCompleted, toBool),
	}

	if key, raw, ok := r.find(contractExtensions); ok {
		items, _, err := toList(raw)
		if err != nil {
			r.fail(KindTypeCoercionFailed, key, err)
		}
		for i, item := range items {
			path := fmt.Sprintf("%s[%d]", key, i)
			obj, _, err := toObject(item)
			if err != nil {
				r.fail(KindTypeCoercionFailed, path, err)
				continue
			}
			rec.Extensions = append(rec.Extensions, parseExtension(r.nested(path, obj)))
		}
	}

	if key, raw, ok := r.find(contractInstallments); ok {
		items, _, err := toList(raw)
		if err != nil {
			r.fail(KindTypeCoercionFailed, key, err)
		}
		for i, item := range items {
			path := fmt.Sprintf("%s[%d]", key, i)
			obj, _, err := toObject(item)
			if err != nil {
				r.fail(KindTypeCoercionFailed, path, err)
				continue
			}
			rec.Installments = append(rec.Installments, parseInstallment(r.nested(path, obj)))
		}
	}

	if key, raw, ok := r.find(contractTransaction); ok {
		obj, _, err := toObject(raw)
		if err != nil {
			r.fail(KindTypeCoercionFailed, key, err)
		} else {
			rec.Transaction = parseTransaction(r.nested(key, obj))
		}
	}
	return rec
}

func parseExtension(r *reader) extensionRecord {
	return extensionRecord{
		reader:     r,
		ExtendedAt: readField(r, extensionExtendedAt, toTime, storeTime),
		NewEndDate: readField(r, extensionNewEnd, toTime, storeTime),
		Cost:       readField(r, extensionCost, toDecimal, storeDecimal),
		Type:       readField(r, extensionType, toString, storeString),
		Count:      readField(r, extensionCount, toInt, storeInt),
	}
}

func parseInstallment(r *reader) installmentRecord {
	rec := installmentRecord{
		reader:    r,
		ID:        readField(r, installmentID, toID, storeString),
		PaymentNr: readField(r, installmentPaymentNr, toInt, storeInt),
		DueDate:   readField(r, installmentDueDate, toTime, storeTime),
		Amount:    readField(r, installmentAmount, toDecimal, storeDecimal),
		Paid:      readField(r, installmentPaid, toBool, storeBool),
	}
	if key, raw, ok := r.find(installmentTransaction); ok {
		obj, _, err := toObject(raw)
		if err != nil {
			r.fail(KindTypeCoercionFailed, key, err)
		} else {
			rec.Transaction = parseTransaction(r.nested(r.fieldPath(key), obj))
		}
	}
	return rec
}

func parseTransaction(r *reader) *transactionRecord {
	return &transactionRecord{
		reader:          r,
		ID:              readField(r, transactionID, toID, storeString),
		Type:            readField(r, transactionType, toString, storeString),
		Status:          readField(r, transactionStatus, toString, storeString),
		PaymentMethod:   readField(r, transactionPaymentMethod, toString, storeString),
		Total:           readField(r, transactionTotal, toDecimal, storeDecimal),
		PaidWithPayment: readField(r, transactionPaidWithPayment, toDecimal, storeDecimal),
		PaidWithWallet:  readField(r, transactionPaidWithWallet, toDecimal, storeDecimal),
	}
}

func storeTime(t time.Time) any { return t }

// Contract переводит документ из коллекции Contracts в сущность
func (m *Mapper) Contract(id string, doc docstore.Document) (*domain.Contract, error) {
	r := newReader(EntityContract, id, doc)
	if strings.TrimSpace(id) == "" {
		r.fail(KindInvariantViolated, "id", fmt.Errorf("document id is empty"))
		return nil, r.err()
	}

	rec := parseContract(r)
	if r.failed() {
		return nil, r.err()
	}

	contract := buildContract(r, id, rec)
	if r.failed() {
		return nil, r.err()
	}
	contract.Source = r.finish(m.observer)
	return contract, nil
}

func buildContract(r *reader, id string, rec contractRecord) *domain.Contract {
	c := &domain.Contract{
		ID:     id,
		UserID: rec.UserID.Value,
		CarID:  rec.CarID.Value,
	}
	if c.UserID == "" {
		r.fail(KindMissingRequiredField, contractUserID.Canonical, missing(contractUserID))
	}
	if c.CarID == "" {
		r.fail(KindMissingRequiredField, contractCarID.Canonical, missing(contractCarID))
	}
	if !rec.StartDate.OK {
		r.fail(KindMissingRequiredField, contractStartDate.Canonical, missing(contractStartDate))
	}
	if !rec.EndDate.OK {
		r.fail(KindMissingRequiredField, contractEndDate.Canonical, missing(contractEndDate))
	}
	if r.failed() {
		return nil
	}

	period, err := domain.NewDateRange(rec.StartDate.Value, rec.EndDate.Value)
	if err != nil {
		r.fail(KindInvariantViolated, rec.StartDate.Key, err)
		r.fail(KindInvariantViolated, rec.EndDate.Key, err)
		return nil
	}
	c.Period = period

	c.OrderID = rec.OrderID.Value
	if !rec.OrderID.OK || c.OrderID == "" {
		c.OrderID = domain.DefaultOrderID(id)
		r.synthesize(contractOrderID, c.OrderID, EventDerived, "order id generated from document id")
	}
	c.ContractNumber = rec.ContractNumber.Value
	if !rec.ContractNumber.OK || c.ContractNumber == "" {
		c.ContractNumber = domain.DefaultContractNumber(id)
		r.synthesize(contractNumber, c.ContractNumber, EventDerived, "contract number generated from document id")
	}

	c.Status = contractStatusOf(r, rec)
	c.BookingType = bookingTypeOf(r, contractBookingType, rec.BookingType)

	currency := domain.DefaultCurrency
	if rec.Currency.OK {
		normalized, err := domain.NormalizeCurrency(rec.Currency.Value)
		if err != nil {
			r.fail(KindTypeCoercionFailed, rec.Currency.Key, err)
			return nil
		}
		if normalized != rec.Currency.Raw {
			r.coerce(contractCurrency, rec.Currency.Key, rec.Currency.Raw, normalized, "currency code normalised")
		}
		currency = normalized
	} else {
		r.synthesize(contractCurrency, currency, EventDefault, "currency defaulted to "+currency)
	}

	c.BookingDetails = bookingDetailsOf(r, rec.BookingDetails)
	c.Locations = domain.LocationsFromBookingDetails(c.BookingDetails)

	c.Installments = installmentsOf(r, rec.Installments, currency)
	c.Transaction = transactionOf(rec.Transaction, currency)
	if rec.Transaction != nil {
		rec.Transaction.reader.keepNested()
	}
	c.Extensions = extensionsOf(r, rec.Extensions, currency)

	if rec.Extended.OK {
		c.Extended = rec.Extended.Value
	} else {
		c.Extended = len(c.Extensions) > 0
		r.absent(contractExtended, c.Extended)
	}

	c.TotalAmount = contractTotalOf(r, rec, c, currency)
	if r.failed() {
		return nil
	}
	reconcile(r, rec, c)
	return c
}

func contractStatusOf(r *reader, rec contractRecord) domain.ContractStatus {
	if rec.Status.OK {
		status, ok := contractStatuses[strings.ToLower(strings.TrimSpace(rec.Status.Value))]
		if !ok {
			r.fail(KindTypeCoercionFailed, rec.Status.Key, fmt.Errorf("%w: contract status %q", errUnknownValue, rec.Status.Value))
			return ""
		}
		if rec.Status.Raw != string(status) {
			r.coerce(contractStatus, rec.Status.Key, rec.Status.Raw, string(status), "status read as "+string(status))
		}
		return status
	}

	status := domain.ContractStatusActive
	switch {
	case rec.Cancelled.Value:
		status = domain.ContractStatusCancelled
	case rec.Completed.Value:
		status = domain.ContractStatusCompleted
	}
	r.synthesize(contractStatus, string(status), EventDerived, "status "+string(status)+" derived from flags")
	return status
}

func bookingTypeOf(r *reader, f Field, value opt[string]) domain.BookingType {
	if !value.OK {
		r.absent(f, "")
		return ""
	}
	typ, ok := bookingTypes[strings.ToLower(strings.TrimSpace(value.Value))]
	if !ok {
		r.fail(KindTypeCoercionFailed, value.Key, fmt.Errorf("%w: booking type %q", errUnknownValue, value.Value))
		return ""
	}
	if value.Raw != string(typ) {
		r.coerce(f, value.Key, value.Raw, string(typ), "booking type read as "+string(typ))
	}
	return typ
}

// bookingDetailsOf приводит непрозрачный payload к переносимому виду, потери фиксируются событиями
func bookingDetailsOf(r *reader, value opt[map[string]any]) map[string]any {
	if !value.OK {
		r.absent(contractBookingDetails, map[string]any{})
		return map[string]any{}
	}
	details, _ := portable(value.Value, "", func(path string, raw any, resolution string) {
		r.event(EventCoercion, joinPath(value.Key, path), raw, resolution)
	}).(map[string]any)
	if !reflect.DeepEqual(details, value.Raw) {
		r.state.source.Coerced[contractBookingDetails.Canonical] = domain.Clamp{
			Raw:     domain.CloneValue(value.Raw),
			Applied: domain.CloneMap(details),
		}
	}
	return details
}

func installmentsOf(r *reader, recs []installmentRecord, currency string) []domain.Installment {
	if len(recs) == 0 {
		return nil
	}
	type indexed struct {
		rec  installmentRecord
		inst domain.Installment
	}
	items := make([]indexed, 0, len(recs))
	for i, rec := range recs {
		ir := rec.reader
		inst := domain.Installment{
			ID:        rec.ID.Value,
			PaymentNr: rec.PaymentNr.Value,
			DueDate:   rec.DueDate.Value,
			IsPaid:    rec.Paid.Value,
		}
		if !rec.PaymentNr.OK {
			inst.PaymentNr = i + 1
			ir.synthesize(installmentPaymentNr, int64(inst.PaymentNr), EventDefault, "payment number taken from position")
		}
		inst.Amount = nonNegativeMoney(ir, installmentAmount, rec.Amount, currency)
		inst.Transaction = transactionOf(rec.Transaction, currency)
		items = append(items, indexed{rec: rec, inst: inst})
	}

	sort.SliceStable(items, func(i, j int) bool {
		return items[i].inst.PaymentNr < items[j].inst.PaymentNr
	})

	out := make([]domain.Installment, len(items))
	for i, item := range items {
		out[i] = item.inst
		keepNestedAs(item.rec.reader, installmentPath(r.state.source, i))
		if item.rec.Transaction != nil {
			keepNestedAs(item.rec.Transaction.reader, joinPath(installmentPath(r.state.source, i), installmentTransaction.Canonical))
		}
	}
	return out
}

func installmentPath(src *domain.SourceInfo, i int) string {
	return fmt.Sprintf("%s[%d]", src.FieldName(contractInstallments.Canonical), i)
}

// keepNestedAs сохраняет непрочитанные ключи вложенного объекта под путём, по которому их найдёт запись
func keepNestedAs(r *reader, path string) {
	if rest := r.leftovers(); len(rest) > 0 {
		r.state.source.Nested[path] = rest
	}
}

func transactionOf(rec *transactionRecord, currency string) *domain.TransactionInfo {
	if rec == nil {
		return nil
	}
	tr := rec.reader
	return &domain.TransactionInfo{
		ID:              rec.ID.Value,
		Type:            rec.Type.Value,
		Status:          rec.Status.Value,
		PaymentMethod:   rec.PaymentMethod.Value,
		TotalAmount:     nonNegativeMoney(tr, transactionTotal, rec.Total, currency),
		PaidWithPayment: nonNegativeMoney(tr, transactionPaidWithPayment, rec.PaidWithPayment, currency),
		PaidWithWallet:  nonNegativeMoney(tr, transactionPaidWithWallet, rec.PaidWithWallet, currency),
	}
}

func extensionsOf(r *reader, recs []extensionRecord, currency string) []domain.Extension {
	if len(recs) == 0 {
		return nil
	}
	out := make([]domain.Extension, 0, len(recs))
	for _, rec := range recs {
		er := rec.reader
		ext := domain.Extension{
			ExtendedAt: rec.ExtendedAt.Value,
			NewEndDate: rec.NewEndDate.Value,
			Cost:       nonNegativeMoney(er, extensionCost, rec.Cost, currency),
			Type:       bookingTypeOf(er, extensionType, rec.Type),
			Count:      rec.Count.Value,
		}
		er.keepNested()
		out = append(out, ext)
	}
	return out
}

// nonNegativeMoney: отсутствующая сумма равна нулю, отрицательная обрезается до нуля
func nonNegativeMoney(r *reader, f Field, value opt[decimal.Decimal], currency string) domain.Money {
	zero := domain.ZeroMoney(currency)
	if !value.OK {
		return zero
	}
	if value.Value.IsNegative() {
		r.clamp(f, value.Key, value.Raw, moneyValue(zero), "negative amount clamped to 0")
		return zero
	}
	m, err := domain.NewMoney(value.Value, currency)
	if err != nil {
		r.fail(KindTypeCoercionFailed, value.Key, err)
		return zero
	}
	return m
}

func contractTotalOf(r *reader, rec contractRecord, c *domain.Contract, currency string) domain.Money {
	if rec.Total.OK {
		return nonNegativeMoney(r, contractTotal, rec.Total, currency)
	}
	if len(c.Installments) == 0 {
		r.fail(KindMissingRequiredField, contractTotal.Canonical, missing(contractTotal))
		return domain.Money{}
	}
	c.TotalAmount = domain.ZeroMoney(currency)
	sum, err := c.InstallmentsTotal()
	if err != nil {
		r.fail(KindInvariantViolated, contractInstallments.Canonical, err)
		return domain.Money{}
	}
	r.synthesize(contractTotal, moneyValue(sum), EventDerived, "total derived from installments")
	return sum
}

// reconcile предупреждает о расхождении суммы платежей и итога, маппинг при этом успешен
func reconcile(r *reader, rec contractRecord, c *domain.Contract) {
	if c.IsReconciled() {
		return
	}
	sum, _ := c.InstallmentsTotal()
	key := rec.Total.Key
	if key == "" {
		key = contractTotal.Canonical
	}
	r.event(EventReconciliation, key, rec.Total.Raw,
		fmt.Sprintf("installments sum to %s, total %s kept", sum, c.TotalAmount))
}

// ContractDocument переводит контракт в документ коллекции Contracts
func (m *Mapper) ContractDocument(c *domain.Contract) docstore.Document {
	w := newWriter(c.Source)

	w.put(contractUserID, c.UserID)
	w.put(contractCarID, c.CarID)
	w.put(contractOrderID, c.OrderID)
	w.put(contractNumber, c.ContractNumber)
	w.put(contractStatus, string(c.Status))
	if c.BookingType != "" || w.has(contractBookingType) {
		w.put(contractBookingType, string(c.BookingType))
	}
	w.put(contractStartDate, c.Period.Start)
	w.put(contractEndDate, c.Period.End)
	w.put(contractCurrency, c.TotalAmount.Currency)
	w.put(contractTotal, moneyValue(c.TotalAmount))

	details, _ := portable(c.BookingDetails, "", func(string, any, string) {}).(map[string]any)
	if details == nil {
		details = map[string]any{}
	}
	w.put(contractBookingDetails, details)
	w.put(contractExtended, c.Extended)

	if len(c.Extensions) > 0 || w.has(contractExtensions) {
		name := w.name(contractExtensions)
		items := make([]any, 0, len(c.Extensions))
		for i, ext := range c.Extensions {
			items = append(items, extensionDocument(w.nested(fmt.Sprintf("%s[%d]", name, i)), ext))
		}
		w.doc[name] = items
	}

	if len(c.Installments) > 0 || w.has(contractInstallments) {
		items := make([]any, 0, len(c.Installments))
		for i, inst := range c.Installments {
			path := installmentPath(c.Source, i)
			items = append(items, installmentDocument(w, path, inst))
		}
		w.doc[w.name(contractInstallments)] = items
	}

	if c.Transaction != nil {
		name := w.name(contractTransaction)
		w.doc[name] = transactionDocument(w.nested(name), *c.Transaction)
	}
	return w.doc
}

func extensionDocument(doc map[string]any, ext domain.Extension) map[string]any {
	if !ext.ExtendedAt.IsZero() {
		doc[extensionExtendedAt.Canonical] = ext.ExtendedAt
	}
	if !ext.NewEndDate.IsZero() {
		doc[extensionNewEnd.Canonical] = ext.NewEndDate
	}
	doc[extensionCost.Canonical] = moneyValue(ext.Cost)
	if ext.Type != "" {
		doc[extensionType.Canonical] = string(ext.Type)
	}
	if ext.Count != 0 {
		doc[extensionCount.Canonical] = int64(ext.Count)
	}
	return doc
}

func installmentDocument(w *writer, path string, inst domain.Installment) map[string]any {
	doc := w.nested(path)
	if inst.ID != "" {
		doc[installmentID.Canonical] = inst.ID
	}
	doc[installmentPaymentNr.Canonical] = int64(inst.PaymentNr)
	if !inst.DueDate.IsZero() {
		doc[installmentDueDate.Canonical] = inst.DueDate
	}
	doc[installmentAmount.Canonical] = moneyValue(inst.Amount)
	doc[installmentPaid.Canonical] = inst.IsPaid
	if inst.Transaction != nil {
		txPath := joinPath(path, installmentTransaction.Canonical)
		doc[installmentTransaction.Canonical] = transactionDocument(w.nested(txPath), *inst.Transaction)
	}
	return doc
}

func transactionDocument(doc map[string]any, tx domain.TransactionInfo) map[string]any {
	for _, kv := range []struct {
		f     Field
		value string
	}{
		{transactionID, tx.ID},
		{transactionType, tx.Type},
		{transactionStatus, tx.Status},
		{transactionPaymentMethod, tx.PaymentMethod},
	} {
		if kv.value != "" {
			doc[kv.f.Canonical] = kv.value
		}
	}
	doc[transactionTotal.Canonical] = moneyValue(tx.TotalAmount)
	doc[transactionPaidWithPayment.Canonical] = moneyValue(tx.PaidWithPayment)
	doc[transactionPaidWithWallet.Canonical] = moneyValue(tx.PaidWithWallet)
	return doc
}
