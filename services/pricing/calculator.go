package pricing

import (
	"fmt"

	"walegrills/models"
	"walegrills/utils"
)

// Calculate prices a catering booking. A nil trip means no address was given and
// transport is not charged. Each line is rounded to pence before summing so the
// total always equals the sum of the lines.
func (t Tariff) Calculate(details models.EventDetails, trip *models.Trip, items []models.LineItem) models.PriceBreakdown {
	guests := t.guestTier(details.Guests)
	hours := t.hourTier(details.ServiceTime)
	serviceHours := float64(details.ServiceTime)

	b := models.PriceBreakdown{
		Chefs:        guests.Chefs,
		Waiters:      guests.Waiters,
		ChefRate:     hours.ChefRate,
		WaiterRate:   hours.WaiterRate,
		EquipmentFee: utils.RoundMoney(guests.EquipmentFee),
	}

	chefCost := utils.RoundMoney(float64(guests.Chefs) * hours.ChefRate * serviceHours)
	waiterCost := utils.RoundMoney(float64(guests.Waiters) * hours.WaiterRate * serviceHours)
	b.StaffCost = utils.RoundMoney(chefCost + waiterCost)

	b.Lines = append(b.Lines,
		models.PriceLine{Kind: models.LineChefs, Label: fmt.Sprintf("Chefs (%d x %dh)", guests.Chefs, details.ServiceTime), Amount: chefCost},
		models.PriceLine{Kind: models.LineWaiters, Label: fmt.Sprintf("Waiters (%d x %dh)", guests.Waiters, details.ServiceTime), Amount: waiterCost},
		models.PriceLine{Kind: models.LineEquipment, Label: "Equipment", Amount: b.EquipmentFee},
	)

	if trip != nil {
		b.PerMileRate = t.mileRate(trip.Miles)
		b.DriverFee = t.driverFee(trip.Hours)
		b.TransportCost = utils.RoundMoney(b.PerMileRate*trip.Miles + b.DriverFee)
	}
	b.Lines = append(b.Lines, models.PriceLine{Kind: models.LineTransport, Label: "Transport", Amount: b.TransportCost})

	for _, item := range items {
		if item.Quantity <= 0 {
			continue
		}
		amount := utils.RoundMoney(item.UnitPrice * float64(item.Quantity))
		b.ItemsTotal = utils.RoundMoney(b.ItemsTotal + amount)
		label := item.Name
		if label == "" {
			label = item.ProductID
		}
		b.Lines = append(b.Lines, models.PriceLine{
			Kind:   models.LineProduct,
			Label:  fmt.Sprintf("%s x%d", label, item.Quantity),
			Amount: amount,
		})
	}

	var total float64
	for _, line := range b.Lines {
		total += line.Amount
	}
	b.Total = utils.RoundMoney(total)
	b.Deposit = utils.RoundMoney(b.Total * t.DepositPercent / 100)
	b.AmountDue = b.Total
	return b
}

// WithPaymentOption fills AmountDue for the customer's chosen payment option.
func WithPaymentOption(b models.PriceBreakdown, option models.PaymentOption) models.PriceBreakdown {
	if option == models.PaymentDeposit {
		b.AmountDue = b.Deposit
	} else {
		b.AmountDue = b.Total
	}
	return b
}
