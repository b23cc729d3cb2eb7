package model

import "go.mongodb.org/mongo-driver/v2/bson"

// ContractCreate is the payload for creating or replacing a contract record.
// contract_id is the natural key; uniqueness is not enforced for it.
type ContractCreate struct {
	ContractID        string   `json:"contract_id" bson:"contract_id" binding:"required"`
	VendorID          string   `json:"vendor_id" bson:"vendor_id" binding:"required"`
	VendorName        string   `json:"vendor_name" bson:"vendor_name" binding:"required"`
	ServiceCategory   string   `json:"service_category" bson:"service_category"`
	ServicesProvided  []string `json:"services_provided" bson:"services_provided"`
	ContractValueUSD  float64  `json:"contract_value_usd" bson:"contract_value_usd"`
	BillingModel      string   `json:"billing_model" bson:"billing_model"`
	MonthlyCostUSD    float64  `json:"monthly_cost_usd" bson:"monthly_cost_usd"`
	ContractStartDate string   `json:"contract_start_date" bson:"contract_start_date"`
	ContractEndDate   string   `json:"contract_end_date" bson:"contract_end_date"`
	ContractStatus    string   `json:"contract_status" bson:"contract_status"`
	Department        string   `json:"department" bson:"department"`
	BusinessUnit      string   `json:"business_unit" bson:"business_unit"`
	PaymentTerms      string   `json:"payment_terms" bson:"payment_terms"`
	RenewalType       string   `json:"renewal_type" bson:"renewal_type"`
	RiskLevel         string   `json:"risk_level" bson:"risk_level"`
}

func (c *ContractCreate) ApplyDefaults() {
	if c.ServicesProvided == nil {
		c.ServicesProvided = []string{}
	}
}

type ContractUpdate struct {
	ContractID        *string   `json:"contract_id"`
	VendorID          *string   `json:"vendor_id"`
	VendorName        *string   `json:"vendor_name"`
	ServiceCategory   *string   `json:"service_category"`
	ServicesProvided  *[]string `json:"services_provided"`
	ContractValueUSD  *float64  `json:"contract_value_usd"`
	BillingModel      *string   `json:"billing_model"`
	MonthlyCostUSD    *float64  `json:"monthly_cost_usd"`
	ContractStartDate *string   `json:"contract_start_date"`
	ContractEndDate   *string   `json:"contract_end_date"`
	ContractStatus    *string   `json:"contract_status"`
	Department        *string   `json:"department"`
	BusinessUnit      *string   `json:"business_unit"`
	PaymentTerms      *string   `json:"payment_terms"`
	RenewalType       *string   `json:"renewal_type"`
	RiskLevel         *string   `json:"risk_level"`
}

// SetMap returns the $set document holding only the supplied fields.
func (u *ContractUpdate) SetMap() bson.M {
	set := bson.M{}
	if u.ContractID != nil {
		set["contract_id"] = *u.ContractID
	}
	if u.VendorID != nil {
		set["vendor_id"] = *u.VendorID
	}
	if u.VendorName != nil {
		set["vendor_name"] = *u.VendorName
	}
	if u.ServiceCategory != nil {
		set["service_category"] = *u.ServiceCategory
	}
	if u.ServicesProvided != nil {
		set["services_provided"] = *u.ServicesProvided
	}
	if u.ContractValueUSD != nil {
		set["contract_value_usd"] = *u.ContractValueUSD
	}
	if u.BillingModel != nil {
		set["billing_model"] = *u.BillingModel
	}
	if u.MonthlyCostUSD != nil {
		set["monthly_cost_usd"] = *u.MonthlyCostUSD
	}
	if u.ContractStartDate != nil {
		set["contract_start_date"] = *u.ContractStartDate
	}
	if u.ContractEndDate != nil {
		set["contract_end_date"] = *u.ContractEndDate
	}
	if u.ContractStatus != nil {
		set["contract_status"] = *u.ContractStatus
	}
	if u.Department != nil {
		set["department"] = *u.Department
	}
	if u.BusinessUnit != nil {
		set["business_unit"] = *u.BusinessUnit
	}
	if u.PaymentTerms != nil {
		set["payment_terms"] = *u.PaymentTerms
	}
	if u.RenewalType != nil {
		set["renewal_type"] = *u.RenewalType
	}
	if u.RiskLevel != nil {
		set["risk_level"] = *u.RiskLevel
	}
	return set
}
