package mapping

import "strings"

// Field is one mapped value: the canonical document key and the older or
// misspelled keys that mean the same thing, in lookup order.
type Field struct {
	Canonical string
	Aliases   []string
}

// Names returns the canonical name followed by the aliases
func (f Field) Names() []string {
	return append([]string{f.Canonical}, f.Aliases...)
}

func field(canonical string, aliases ...string) Field {
	return Field{Canonical: canonical, Aliases: aliases}
}

// Car document fields
var (
	carMake             = field("make", "Make")
	carModel            = field("model", "Model")
	carYear             = field("year", "Year")
	carLicensePlate     = field("license_plate", "licensePlate", "LicensePlate", "plate_number")
	carDailyRate        = field("rental_price_day", "rental_price", "daily_rate")
	carWeeklyRate       = field("rental_price_week", "weekly_rate")
	carMonthlyRate      = field("rental_price_month", "rental_price_mounth", "monthly_rate")
	carCurrency         = field("Currency", "currency")
	carSeats            = field("Seats", "seats")
	carTransmission     = field("trans_type", "transmission", "Transmission")
	carFeatures         = field("features", "Features")
	carOutOfService     = field("isOutOfService", "is_out_of_service", "outOfService")
	carUnderMaintenance = field("underMaintenance", "under_maintenance")
	carRented           = field("isRented", "is_rented")
	carAvailable        = field("isAvailable", "is_available")
	carLegacyStatus     = field("status")
	carHasGPS           = field("has_gps", "hasGps")
	carHasBluetooth     = field("has_bluetooth", "hasBluetooth")
	carHasUSBCharger    = field("has_usb_charger", "hasUsbCharger")
	carHasBackupCamera  = field("has_backup_camera", "hasBackupCamera")
	carLastServiceDate  = field("last_service_date", "lastServiceDate", "LastServiceDate")
	carNextServiceDate  = field("next_service_date", "nextServiceDate", "NextServiceDate")
)

// featureFlags maps boolean car fields to the feature they switch on
var featureFlags = []struct {
	Field   Field
	Feature string
}{
	{carHasGPS, "gps"},
	{carHasBluetooth, "bluetooth"},
	{carHasUSBCharger, "usb_charger"},
	{carHasBackupCamera, "backup_camera"},
}

// User document fields
var (
	userFirstName      = field("first_name", "firstName", "FirstName")
	userLastName       = field("last_name", "lastName", "LastName")
	userEmail          = field("email", "Email")
	userPhone          = field("phone_number", "phoneNumber", "phone")
	userNationality    = field("nationality", "Nationality")
	userWalletBalance  = field("wallet_balance", "walletBalance", "wallet")
	userWalletCurrency = field("wallet_currency", "walletCurrency", "currency")
	userEmailVerified  = field("email_verified", "isEmailVerified", "emailVerified")
	userPhoneVerified  = field("phone_verified", "isPhoneVerified", "phoneVerified")
	userActive         = field("isActive", "is_active", "active")
	userBlocked        = field("isBlocked", "is_blocked")
	userDeleted        = field("isDeleted", "is_deleted")
	userDisabled       = field("disabled")
	userLegacyStatus   = field("status")
)

// Contract document fields
var (
	contractUserID         = field("user_id", "User", "userId")
	contractCarID          = field("car_id", "Car", "carId")
	contractOrderID        = field("OrderId", "order_id", "orderId")
	contractNumber         = field("ContractNumber", "contract_number", "contractNumber")
	contractStatus         = field("ContractStatus", "status", "contract_status")
	contractBookingType    = field("booking_type", "bookingType", "BookingType")
	contractStartDate      = field("start_date", "startDate", "StartDate")
	contractEndDate        = field("end_date", "endDate", "EndDate")
	contractTotal          = field("total_cost", "totalCost", "total_amount", "TotalCost")
	contractCurrency       = field("Currency", "currency")
	contractBookingDetails = field("BookingDetails", "booking_details", "bookingDetails")
	contractExtensions     = field("listExtendDetails", "extension_details", "extensions")
	contractExtended       = field("IsExtended", "is_extended", "isExtended")
	contractTransaction    = field("transaction_info", "tansaction_info", "transactionInfo")
	contractInstallments   = field("installments", "Installments")
	contractCancelled      = field("isCancelled", "is_cancelled")
	contractCompleted      = field("isCompleted", "is_completed")
)

// Installment keys
var (
	installmentID          = field("id")
	installmentPaymentNr   = field("paymentNr", "payment_nr")
	installmentDueDate     = field("dueDate", "due_date")
	installmentAmount      = field("amount")
	installmentPaid        = field("isPaid", "is_paid")
	installmentTransaction = field("transaction")
)

// Transaction keys. The misspelled names are what the booking front end writes.
var (
	transactionID              = field("id")
	transactionType            = field("type")
	transactionStatus          = field("status")
	transactionPaymentMethod   = field("paymentMethod", "payment_method")
	transactionTotal           = field("totalAmount", "total_amount")
	transactionPaidWithPayment = field("amountPaiedWithPayment", "amountPaidWithPayment")
	transactionPaidWithWallet  = field("amountPaiedWithWallet", "amountPaidWithWallet")
)

// Extension keys
var (
	extensionExtendedAt = field("extended_date", "extendedAt")
	extensionNewEnd     = field("new_end_date", "newEndDate")
	extensionCost       = field("extension_cost", "cost")
	extensionType       = field("extension_type", "type")
	extensionCount      = field("count")
)

// Tables lists every field per document kind, used to check the table for conflicts
var Tables = map[string][]Field{
	EntityCar: {
		carMake, carModel, carYear, carLicensePlate, carDailyRate, carWeeklyRate, carMonthlyRate,
		carCurrency, carSeats, carTransmission, carFeatures, carOutOfService, carUnderMaintenance,
		carRented, carAvailable, carLegacyStatus, carHasGPS, carHasBluetooth, carHasUSBCharger,
		carHasBackupCamera, carLastServiceDate, carNextServiceDate,
	},
	EntityUser: {
		userFirstName, userLastName, userEmail, userPhone, userNationality, userWalletBalance,
		userWalletCurrency, userEmailVerified, userPhoneVerified, userActive, userBlocked,
		userDeleted, userDisabled, userLegacyStatus,
	},
	EntityContract: {
		contractUserID, contractCarID, contractOrderID, contractNumber, contractStatus,
		contractBookingType, contractStartDate, contractEndDate, contractTotal, contractCurrency,
		contractBookingDetails, contractExtensions, contractExtended, contractTransaction,
		contractInstallments, contractCancelled, contractCompleted,
	},
	"installment": {
		installmentID, installmentPaymentNr, installmentDueDate, installmentAmount,
		installmentPaid, installmentTransaction,
	},
	"transaction": {
		transactionID, transactionType, transactionStatus, transactionPaymentMethod,
		transactionTotal, transactionPaidWithPayment, transactionPaidWithWallet,
	},
	"extension": {
		extensionExtendedAt, extensionNewEnd, extensionCost, extensionType, extensionCount,
	},
}

// Entity names used in events and errors
const (
	EntityCar      = "car"
	EntityUser     = "user"
	EntityContract = "contract"
)

// otherField labels metric events whose key is not in the entity's table
const otherField = "other"

// canonicalNames maps every name of a top-level field to its canonical name, per entity
var canonicalNames = func() map[string]map[string]string {
	out := make(map[string]map[string]string, len(Tables))
	for entity, fields := range Tables {
		names := make(map[string]string)
		for _, f := range fields {
			for _, name := range f.Names() {
				names[name] = f.Canonical
			}
		}
		out[entity] = names
	}
	return out
}()

// MetricField reduces an event path such as "installments[3].amount" or
// "BookingDetails.customer" to the canonical name of its top-level field.
// Keys outside the table become "other", so the label set stays fixed.
func MetricField(entity, path string) string {
	top := path
	if i := strings.IndexAny(path, ".["); i >= 0 {
		top = path[:i]
	}
	if canonical, ok := canonicalNames[entity][top]; ok {
		return canonical
	}
	return otherField
}
