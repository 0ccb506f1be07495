package dto

type CreateAddressRequest struct {
	Label      string `json:"label"`
	Recipient  string `json:"recipient"   validate:"required"`
	Phone      string `json:"phone"`
	Street     string `json:"street"      validate:"required"`
	City       string `json:"city"        validate:"required"`
	State      string `json:"state"`
	PostalCode string `json:"postal_code"`
	Country    string `json:"country"     validate:"required"`
	IsDefault  bool   `json:"is_default"`
}

type UpdateAddressRequest struct {
	Label      *string `json:"label"`
	Recipient  *string `json:"recipient"`
	Phone      *string `json:"phone"`
	Street     *string `json:"street"`
	City       *string `json:"city"`
	State      *string `json:"state"`
	PostalCode *string `json:"postal_code"`
	Country    *string `json:"country"`
}

type SavedAddressResponse struct {
	ID         string `json:"id"`
	Label      string `json:"label"`
	Recipient  string `json:"recipient"`
	Phone      string `json:"phone"`
	Street     string `json:"street"`
	City       string `json:"city"`
	State      string `json:"state"`
	PostalCode string `json:"postal_code"`
	Country    string `json:"country"`
	IsDefault  bool   `json:"is_default"`
}
