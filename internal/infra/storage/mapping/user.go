package mapping

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/d3coo/car-rental-fastapi-vite/internal/domain"
	"github.com/d3coo/car-rental-fastapi-vite/internal/infra/docstore"
)

// userRecord типизированное представление документа пользователя
type userRecord struct {
	FirstName      opt[string]
	LastName       opt[string]
	Email          opt[string]
	Phone          opt[string]
	Nationality    opt[string]
	WalletBalance  opt[decimal.Decimal]
	WalletCurrency opt[string]
	EmailVerified  opt[bool]
	PhoneVerified  opt[bool]
	Active         opt[bool]

	// сигналы блокировки только читаются и остаются в документе как есть
	Blocked      opt[bool]
	Deleted      opt[bool]
	Disabled     opt[bool]
	LegacyStatus opt[string]
}

func parseUser(r *reader) userRecord {
	return userRecord{
		FirstName:      readField(r, userFirstName, toString, storeString),
		LastName:       readField(r, userLastName, toString, storeString),
		Email:          readField(r, userEmail, toString, storeString),
		Phone:          readField(r, userPhone, toString, storeString),
		Nationality:    readField(r, userNationality, toString, storeString),
		WalletBalance:  readField(r, userWalletBalance, toDecimal, storeDecimal),
		WalletCurrency: readField[string](r, userWalletCurrency, toString, nil),
		EmailVerified:  readField(r, userEmailVerified, toBool, storeBool),
		PhoneVerified:  readField(r, userPhoneVerified, toBool, storeBool),
		Active:         readField(r, userActive, toBool, storeBool),
		Blocked:        peekField(r, userBlocked, toBool),
		Deleted:        peekField(r, userDeleted, toBool),
		Disabled:       peekField(r, userDisabled, toBool),
		LegacyStatus:   peekField(r, userLegacyStatus, toString),
	}
}

// User переводит документ из коллекции Users в сущность
func (m *Mapper) User(id string, doc docstore.Document) (*domain.User, error) {
	r := newReader(EntityUser, id, doc)
	if strings.TrimSpace(id) == "" {
		r.fail(KindInvariantViolated, "id", fmt.Errorf("document id is empty"))
		return nil, r.err()
	}

	rec := parseUser(r)
	if r.failed() {
		return nil, r.err()
	}

	user := buildUser(r, id, rec)
	if r.failed() {
		return nil, r.err()
	}
	user.Source = r.finish(m.observer)
	return user, nil
}

func buildUser(r *reader, id string, rec userRecord) *domain.User {
	user := &domain.User{
		ID:            id,
		FirstName:     optionalString(r, userFirstName, rec.FirstName),
		LastName:      optionalString(r, userLastName, rec.LastName),
		Email:         optionalString(r, userEmail, rec.Email),
		Phone:         optionalString(r, userPhone, rec.Phone),
		Nationality:   optionalString(r, userNationality, rec.Nationality),
		EmailVerified: optionalBool(r, userEmailVerified, rec.EmailVerified),
		PhoneVerified: optionalBool(r, userPhoneVerified, rec.PhoneVerified),
	}

	currency := domain.DefaultCurrency
	if rec.WalletCurrency.OK {
		normalized, err := domain.NormalizeCurrency(rec.WalletCurrency.Value)
		if err != nil {
			r.fail(KindTypeCoercionFailed, rec.WalletCurrency.Key, err)
			return nil
		}
		if normalized != rec.WalletCurrency.Raw {
			r.coerce(userWalletCurrency, rec.WalletCurrency.Key, rec.WalletCurrency.Raw, normalized, "currency code normalised")
		}
		currency = normalized
	} else {
		r.absent(userWalletCurrency, currency)
	}

	user.WalletBalance = domain.ZeroMoney(currency)
	switch {
	case !rec.WalletBalance.OK:
		r.synthesize(userWalletBalance, moneyValue(user.WalletBalance), EventDefault, "wallet balance defaulted to 0")
	case rec.WalletBalance.Value.IsNegative():
		r.clamp(userWalletBalance, rec.WalletBalance.Key, rec.WalletBalance.Raw, moneyValue(user.WalletBalance),
			"negative wallet balance clamped to 0")
	default:
		balance, err := domain.NewMoney(rec.WalletBalance.Value, currency)
		if err != nil {
			r.fail(KindTypeCoercionFailed, rec.WalletBalance.Key, err)
			return nil
		}
		user.WalletBalance = balance
	}

	user.Status = userStatusOf(r, rec, user)
	return user
}

// userStatusOf таблица решений статуса: блокировка, явный флаг, старый статус, верификация
func userStatusOf(r *reader, rec userRecord, user *domain.User) domain.UserStatus {
	var (
		status domain.UserStatus
		reason string
	)
	switch {
	case rec.Blocked.Value || rec.Deleted.Value || rec.Disabled.Value:
		status, reason = domain.UserStatusInactive, "blocking flag"
	case rec.Active.OK:
		status, reason = inactiveUnless(rec.Active.Value), "active flag"
	case rec.LegacyStatus.OK:
		legacy := strings.ToLower(strings.TrimSpace(rec.LegacyStatus.Value))
		status, reason = inactiveUnless(legacy == "active"), "legacy status "+legacy
	default:
		status, reason = inactiveUnless(user.IsVerified()), "verification flags"
	}
	if !rec.Active.OK {
		r.absent(userActive, status == domain.UserStatusActive)
	}
	r.event(EventDerived, userActive.Canonical, rec.Active.Raw, fmt.Sprintf("status %s from %s", status, reason))
	return status
}

func inactiveUnless(active bool) domain.UserStatus {
	if active {
		return domain.UserStatusActive
	}
	return domain.UserStatusInactive
}

func optionalString(r *reader, f Field, value opt[string]) string {
	if !value.OK {
		r.absent(f, "")
		return ""
	}
	return value.Value
}

func optionalBool(r *reader, f Field, value opt[bool]) bool {
	if !value.OK {
		r.absent(f, false)
		return false
	}
	return value.Value
}

// UserDocument переводит пользователя в документ коллекции Users
func (m *Mapper) UserDocument(user *domain.User) docstore.Document {
	w := newWriter(user.Source)

	w.put(userFirstName, user.FirstName)
	w.put(userLastName, user.LastName)
	w.put(userEmail, user.Email)
	w.put(userPhone, user.Phone)
	w.put(userNationality, user.Nationality)
	w.put(userWalletCurrency, user.WalletBalance.Currency)
	w.put(userWalletBalance, moneyValue(user.WalletBalance))
	w.put(userEmailVerified, user.EmailVerified)
	w.put(userPhoneVerified, user.PhoneVerified)

	active := user.Status == domain.UserStatusActive
	w.put(userActive, active)
	if active {
		// активация снимает блокировку, иначе чтение снова даст inactive
		for _, f := range []Field{userBlocked, userDeleted, userDisabled} {
			for _, name := range f.Names() {
				if _, ok := w.doc[name]; ok {
					w.doc[name] = false
				}
			}
		}
	}
	return w.doc
}
