package domain

import "fmt"

// LocationType tells where a car is picked up or dropped off
type LocationType string

const (
	LocationBranch       LocationType = "branch"
	LocationAirport      LocationType = "airport"
	LocationSavedAddress LocationType = "saved_address"
)

// Location is a pickup or drop-off point referenced from booking details
type Location struct {
	Type LocationType
	Name string
	ID   string
}

// IsSameAs compares locations by type and id, names are display-only
func (l Location) IsSameAs(o Location) bool {
	return l.Type == o.Type && l.ID == o.ID
}

// UnknownLocation is used when booking details name no pickup point
func UnknownLocation() Location {
	return Location{Type: LocationBranch, Name: "Unknown"}
}

// LocationPair is the pickup/drop-off pair of a contract
type LocationPair struct {
	Pickup  Location
	Dropoff Location
}

// IsRoundTrip returns true if the car is returned where it was picked up
func (p LocationPair) IsRoundTrip() bool {
	return p.Pickup.IsSameAs(p.Dropoff)
}

// Booking details keys that describe pickup and drop-off. The spellings are the
// ones the booking front end stores.
const (
	DetailIsPickup           = "isPickup"
	DetailIsAirport          = "isAirport"
	DetailIsSavedAddress     = "isSavedAddress"
	DetailPickupBranch       = "PicupBranche"
	DetailPickupAirport      = "Ariport"
	DetailPickupSavedAddress = "SavedAddress"
	DetailReturnBranch       = "ReturnBranche"
	DetailReturnAirport      = "ReturnAirport"
	DetailReturnSavedAddress = "ReturnSavedAddress"
)

// LocationsFromBookingDetails derives the pickup/drop-off pair.
// Without a return location the car goes back to the pickup point.
func LocationsFromBookingDetails(details map[string]any) LocationPair {
	var pickup Location
	switch {
	case truthy(details[DetailIsPickup]):
		pickup = locationFrom(LocationBranch, details[DetailPickupBranch])
	case truthy(details[DetailIsAirport]):
		pickup = locationFrom(LocationAirport, details[DetailPickupAirport])
	case truthy(details[DetailIsSavedAddress]):
		pickup = locationFrom(LocationSavedAddress, details[DetailPickupSavedAddress])
	default:
		pickup = UnknownLocation()
	}

	dropoff := pickup
	switch {
	case nonEmptyMap(details[DetailReturnBranch]):
		dropoff = locationFrom(LocationBranch, details[DetailReturnBranch])
	case nonEmptyMap(details[DetailReturnAirport]):
		dropoff = locationFrom(LocationAirport, details[DetailReturnAirport])
	case nonEmptyMap(details[DetailReturnSavedAddress]):
		dropoff = locationFrom(LocationSavedAddress, details[DetailReturnSavedAddress])
	}
	return LocationPair{Pickup: pickup, Dropoff: dropoff}
}

func locationFrom(typ LocationType, raw any) Location {
	loc := Location{Type: typ}
	m, ok := raw.(map[string]any)
	if !ok {
		return loc
	}
	if name, ok := m["name"].(string); ok {
		loc.Name = name
	}
	if id, ok := m["id"]; ok && id != nil {
		loc.ID = fmt.Sprint(id)
	}
	return loc
}

func truthy(v any) bool {
	b, ok := v.(bool)
	return ok && b
}

func nonEmptyMap(v any) bool {
	m, ok := v.(map[string]any)
	return ok && len(m) > 0
}
