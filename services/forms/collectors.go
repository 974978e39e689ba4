package forms

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"walegrills/models"

	"github.com/go-playground/validator/v10"
)

// AddressMessage is shown when the distance lookup cannot resolve an address.
const AddressMessage = "Could not verify address. Please enter a valid one."

// AddressVerifier checks that an address can be routed to.
type AddressVerifier interface {
	VerifyAddress(ctx context.Context, address string) error
}

// ProductLister returns the catalog products of one type.
type ProductLister interface {
	Products(ctx context.Context, productType string) ([]models.Product, error)
}

// Collector validates the input of each checkout step.
type Collector struct {
	validate *validator.Validate
	Verifier AddressVerifier
	Catalog  ProductLister
}

func NewCollector(verifier AddressVerifier, catalog ProductLister) *Collector {
	return &Collector{validate: newValidator(), Verifier: verifier, Catalog: catalog}
}

func trimAll(fields ...*string) {
	for _, f := range fields {
		*f = strings.TrimSpace(*f)
	}
}

// PersonalInfo validates step 1.
func (c *Collector) PersonalInfo(in models.PersonalInfo) (models.PersonalInfo, error) {
	trimAll(&in.Title, &in.FullName, &in.Phone, &in.Email)
	if err := c.validate.Struct(in); err != nil {
		return models.PersonalInfo{}, toFieldErrors(err)
	}
	return in, nil
}

// EventDetails validates step 2. The address is verified concurrently with the
// field rules and only affects the eventAddress field.
func (c *Collector) EventDetails(ctx context.Context, in models.EventDetails) (models.EventDetails, error) {
	trimAll(&in.Date, &in.EventType, &in.EventStyle, &in.EventAddress, &in.Note)

	addrResult := make(chan error, 1)
	if in.EventAddress != "" && c.Verifier != nil {
		go func(addr string) {
			addrResult <- c.Verifier.VerifyAddress(ctx, addr)
		}(in.EventAddress)
	} else {
		addrResult <- nil
	}

	fields := FieldErrors{}
	if err := c.validate.Struct(in); err != nil {
		converted := toFieldErrors(err)
		fe, ok := converted.(FieldErrors)
		if !ok {
			return models.EventDetails{}, converted
		}
		fields = fe
	}

	select {
	case err := <-addrResult:
		if err != nil {
			if _, exists := fields["eventAddress"]; !exists {
				fields["eventAddress"] = AddressMessage
			}
		}
	case <-ctx.Done():
		return models.EventDetails{}, ctx.Err()
	}

	if len(fields) > 0 {
		return models.EventDetails{}, fields
	}
	in.BookingType = models.BookingTypeOnSite
	return in, nil
}

// Items validates step 3 against the catering catalog. Zero quantities are dropped
// and repeated products are merged.
func (c *Collector) Items(ctx context.Context, refs []models.ItemRef) ([]models.LineItem, error) {
	fields := FieldErrors{}
	for i, ref := range refs {
		if ref.Quantity < 0 {
			fields[fmt.Sprintf("items[%d].quantity", i)] = "Quantity cannot be negative"
		}
	}
	if len(fields) > 0 {
		return nil, fields
	}

	products, err := c.Catalog.Products(ctx, models.ProductTypeGeneral)
	if err != nil {
		return nil, fmt.Errorf("failed to load catalog: %w", err)
	}
	byID := make(map[string]models.Product, len(products))
	for _, p := range products {
		byID[p.ID] = p
	}

	items := []models.LineItem{}
	index := map[string]int{}
	for i, ref := range refs {
		if ref.Quantity == 0 {
			continue
		}
		p, ok := byID[ref.ProductID]
		if !ok {
			fields[fmt.Sprintf("items[%d].productId", i)] = "This item is no longer available"
			continue
		}
		if at, dup := index[p.ID]; dup {
			items[at].Quantity += ref.Quantity
			continue
		}
		index[p.ID] = len(items)
		items = append(items, models.LineItem{ProductID: p.ID, Quantity: ref.Quantity, UnitPrice: p.Amount, Name: p.Name})
	}
	if len(fields) > 0 {
		return nil, fields
	}
	return items, nil
}

// Delivery validates the meal plan delivery form.
func (c *Collector) Delivery(in models.DeliveryInfo) (models.DeliveryInfo, error) {
	trimAll(&in.Prefix, &in.Name, &in.Email, &in.PhoneNumber, &in.DeliveryAddress, &in.DeliveryDate)
	if err := c.validate.Struct(in); err != nil {
		return models.DeliveryInfo{}, toFieldErrors(err)
	}
	return in, nil
}

// AsFieldErrors reports whether err carries per-field messages.
func AsFieldErrors(err error) (FieldErrors, bool) {
	var fe FieldErrors
	if errors.As(err, &fe) {
		return fe, true
	}
	return nil, false
}
