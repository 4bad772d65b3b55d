package memory

import (
	"strconv"
	"time"

	"github.com/google/uuid"

	"github.com/gosuda/estatehub/internal/domain"
)

// Default fixture identities. They never change so tests and demo links can
// rely on them across resets.
var (
	DefaultEstateID = uuid.MustParse("435613ac-a468-47a3-ac4f-649d89764c22") //nolint:gochecknoglobals // fixture id

	SafaricomOperatorID = uuid.MustParse("3a9e5c1b-7f2d-4b6e-8a0c-1d2e3f4a5b60") //nolint:gochecknoglobals // fixture id
	VoucherOperatorID   = uuid.MustParse("8b7c6d5e-4f3a-4210-9e8d-7c6b5a4f3e21") //nolint:gochecknoglobals // fixture id

	Merchant1ID = uuid.MustParse("b0e4ad4b-4b06-4d9a-9ab5-1b8d2a0c5e01") //nolint:gochecknoglobals // fixture id
	Merchant2ID = uuid.MustParse("b0e4ad4b-4b06-4d9a-9ab5-1b8d2a0c5e02") //nolint:gochecknoglobals // fixture id
	Merchant3ID = uuid.MustParse("b0e4ad4b-4b06-4d9a-9ab5-1b8d2a0c5e03") //nolint:gochecknoglobals // fixture id

	SafaricomContractID = uuid.MustParse("c7a1d2e3-0f4b-4c5d-8e6f-a0b1c2d3e401") //nolint:gochecknoglobals // fixture id
	VoucherContractID   = uuid.MustParse("c7a1d2e3-0f4b-4c5d-8e6f-a0b1c2d3e402") //nolint:gochecknoglobals // fixture id
)

// Fixture sizes.
const (
	DefaultMerchantCount = 3
	DefaultOperatorCount = 2
	DefaultContractCount = 2

	// Safaricom Contract: 100 KES, 200 KES and Custom topups, one fee each.
	SafaricomProductCount   = 3
	SafaricomFeesPerProduct = 1

	// Hospital 1 Contract: a single voucher product with no fees.
	VoucherProductCount   = 1
	VoucherFeesPerProduct = 0
)

var fixtureEpoch = time.Date(2024, time.January, 15, 9, 0, 0, 0, time.UTC) //nolint:gochecknoglobals // fixed fixture time

func fixedID(prefix string, n int) uuid.UUID {
	return uuid.NewSHA1(DefaultEstateID, []byte(prefix+strconv.Itoa(n)))
}

func seed(s *Store) {
	s.SetEstate(domain.EstateRecord{
		ID:        DefaultEstateID,
		Name:      "Test Estate",
		Reference: "Estate1",
	})

	safaricom := domain.Operator{
		ID:                          SafaricomOperatorID,
		Name:                        "Safaricom",
		RequireCustomMerchantNumber: true,
		RequireCustomTerminalNumber: false,
	}
	voucher := domain.Operator{
		ID:   VoucherOperatorID,
		Name: "Voucher",
	}
	s.AddOperator(DefaultEstateID, safaricom)
	s.AddOperator(DefaultEstateID, voucher)

	topups := domain.Contract{
		ID:           SafaricomContractID,
		Description:  "Safaricom Contract",
		OperatorID:   SafaricomOperatorID,
		OperatorName: safaricom.Name,
		Products: []domain.Product{
			topupProduct(1, "100 KES Topup", "100 KES", "100.00", 0.5),
			topupProduct(2, "200 KES Topup", "200 KES", "200.00", 0.5),
			topupProduct(3, "Custom", "Custom", domain.VariableValue, 0.5),
		},
	}
	vouchers := domain.Contract{
		ID:           VoucherContractID,
		Description:  "Hospital 1 Contract",
		OperatorID:   VoucherOperatorID,
		OperatorName: voucher.Name,
		Products: []domain.Product{{
			ID:              fixedID("voucher-product-", 1),
			Name:            "10 KES Voucher",
			DisplayText:     "10 KES",
			Value:           "10.00",
			TransactionFees: []domain.TransactionFee{},
		}},
	}
	s.AddContract(DefaultEstateID, topups)
	s.AddContract(DefaultEstateID, vouchers)

	merchants := []struct {
		id       uuid.UUID
		name     string
		schedule string
		town     string
		balance  domain.Money
	}{
		{Merchant1ID, "Test Merchant 1", domain.SettlementImmediate, "Nairobi", 1_000_000},
		{Merchant2ID, "Test Merchant 2", domain.SettlementWeekly, "Mombasa", 500_000},
		{Merchant3ID, "Test Merchant 3", domain.SettlementMonthly, "Kisumu", 250_000},
	}
	for i, fm := range merchants {
		n := strconv.Itoa(i + 1)
		s.AddMerchant(DefaultEstateID, domain.Merchant{
			ID:                 fm.id,
			Name:               fm.name,
			Reference:          "MERCH" + n,
			Balance:            fm.balance,
			AvailableBalance:   fm.balance,
			SettlementSchedule: fm.schedule,
			AddressLine1:       "Address Line " + n,
			Town:               fm.town,
			Region:             "Kenya",
			PostalCode:         "0010" + n,
			Country:            "Kenya",
			ContactName:        "Contact " + n,
			ContactEmail:       "merchant" + n + "@testestate1.co.uk",
			ContactPhone:       "0123456789" + n,
			Operators: []domain.MerchantOperator{{
				OperatorID:     SafaricomOperatorID,
				Name:           safaricom.Name,
				MerchantNumber: "0000" + n,
				TerminalNumber: "1000" + n,
			}},
			Contracts: []domain.MerchantContract{{
				ContractID:   SafaricomContractID,
				Description:  topups.Description,
				OperatorName: topups.OperatorName,
			}},
			Devices: map[uuid.UUID]string{
				fixedID("device-", i+1): "DEVICE" + n,
			},
			Deposits:  []domain.MerchantDeposit{},
			CreatedAt: fixtureEpoch.AddDate(0, 0, -7*(len(merchants)-i)),
		})
	}
}

func topupProduct(n int, name, display, value string, fee float64) domain.Product {
	return domain.Product{
		ID:          fixedID("topup-product-", n),
		Name:        name,
		DisplayText: display,
		Value:       value,
		TransactionFees: []domain.TransactionFee{{
			ID:              fixedID("topup-fee-", n),
			Description:     "Merchant Commission",
			Value:           fee,
			CalculationType: domain.CalculationPercentage,
			FeeType:         domain.FeeTypeMerchant,
		}},
	}
}
