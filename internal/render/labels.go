package render

// Per-section label dictionaries and renderer configurations. These are
// plain data owned by each renderer; callers can inject replacements in
// tests.

func activityConfig() Config {
	return Config{
		Title: "Facility Reports",
		Labels: map[string]string{
			"activity_name":       "Activity",
			"source_type_name":    "Source type",
			"unit_name":           "Unit name",
			"unit_type":           "Unit type",
			"fuel_type":           "Fuel type",
			"fuel_classification": "Fuel classification",
			"annual_fuel_amount":  "Annual fuel amount",
			"annual_weight":       "Annual weight",
			"gas_type":            "Gas",
			"emission":            "Emission (tCO2e)",
			"methodology":         "Methodology",
			"description":         "Description",
		},
		TextDiffMinLen: 60,
	}
}

// EmissionSummaryConfig covers the per-facility emission summary totals.
func EmissionSummaryConfig() Config {
	return Config{
		Title: "Emission Summary",
		Labels: map[string]string{
			"attributable_for_reporting":           "Attributable for reporting",
			"attributable_for_reporting_threshold": "Attributable for reporting threshold",
			"reporting_only_emission":              "Reporting-only emission",
			"emission_categories":                  "Emission categories",
			"fuel_excluded":                        "Fuel excluded",
			"other_excluded":                       "Other excluded",
		},
		DecimalPlaces: 4,
	}
}

func ProductionDataConfig() Config {
	return Config{
		Title:    "Production Data",
		RowLabel: "Product",
		Labels: map[string]string{
			"product_name":                      "Product",
			"annual_production":                 "Annual production",
			"production_data_apr_dec":           "Production Apr-Dec",
			"production_methodology":            "Production methodology",
			"storage_quantity_start_of_period":  "Storage at start of period",
			"storage_quantity_end_of_period":    "Storage at end of period",
			"quantity_sold_during_period":       "Quantity sold during period",
			"quantity_throughput_during_period": "Quantity throughput during period",
		},
		DecimalPlaces: 4,
	}
}

func EmissionAllocationConfig() Config {
	return Config{
		Title:    "Emission Allocation",
		RowLabel: "Product",
		Labels: map[string]string{
			"allocated_quantity":     "Allocated quantity",
			"allocation_methodology": "Allocation methodology",
			"allocation_other_methodology_description": "Other methodology description",
			"products": "Products",
		},
		DecimalPlaces: 4,
		SuppressZero:  true,
	}
}

func NonAttributableConfig() Config {
	return Config{
		Title:    "Non-Attributable Emissions",
		RowLabel: "Record",
		Labels: map[string]string{
			"activity_name":     "Activity",
			"source_type":       "Source type",
			"gas_type":          "Gas",
			"emission_category": "Emission category",
		},
	}
}

func OperationInfoConfig() Config {
	return Config{
		Title: "Operation Information",
		Labels: map[string]string{
			"operator_legal_name":            "Operator legal name",
			"operator_trade_name":            "Operator trade name",
			"operation_name":                 "Operation name",
			"operation_type":                 "Operation type",
			"registration_purpose":           "Registration purpose",
			"regulated_products":             "Regulated products",
			"reporting_activities":           "Reporting activities",
			"operation_bcghgid":              "BC GHG ID",
			"bc_obps_regulated_operation_id": "BORO ID",
		},
	}
}

func PersonResponsibleConfig() Config {
	return Config{
		Title: "Person Responsible",
		Labels: map[string]string{
			"first_name":       "First name",
			"last_name":        "Last name",
			"position_title":   "Position title",
			"email":            "Email",
			"phone_number":     "Phone number",
			"business_address": "Business address",
			"street_address":   "Street address",
			"municipality":     "Municipality",
			"province":         "Province",
			"postal_code":      "Postal code",
		},
	}
}

func AdditionalDataConfig() Config {
	return Config{
		Title: "Additional Reporting Data",
		Labels: map[string]string{
			"capture_emissions":               "Emissions captured",
			"emissions_on_site_use":           "Emissions for on-site use",
			"emissions_on_site_sequestration": "Emissions for on-site sequestration",
			"emissions_off_site_transfer":     "Emissions for off-site transfer",
			"electricity_generated":           "Electricity generated",
		},
		DecimalPlaces: 4,
	}
}

func NewEntrantConfig() Config {
	return Config{
		Title:    "New Entrant Information",
		RowLabel: "Product",
		Labels: map[string]string{
			"authorization_date":       "Authorization date",
			"first_shipment_date":      "First shipment date",
			"new_entrant_period_start": "New entrant period start",
			"assertion_statement":      "Assertion statement",
			"production_amount":        "Production amount",
		},
		DecimalPlaces: 4,
	}
}

func ElectricityImportConfig() Config {
	return Config{
		Title: "Electricity Import Data",
		Labels: map[string]string{
			"import_specified_electricity":     "Specified imports (MWh)",
			"import_specified_emissions":       "Specified import emissions",
			"import_unspecified_electricity":   "Unspecified imports (MWh)",
			"import_unspecified_emissions":     "Unspecified import emissions",
			"export_specified_electricity":     "Specified exports (MWh)",
			"export_specified_emissions":       "Specified export emissions",
			"export_unspecified_electricity":   "Unspecified exports (MWh)",
			"export_unspecified_emissions":     "Unspecified export emissions",
			"canadian_entitlement_electricity": "Canadian entitlement (MWh)",
			"canadian_entitlement_emissions":   "Canadian entitlement emissions",
		},
		DecimalPlaces: 4,
	}
}

func ComplianceSummaryConfig() Config {
	return Config{
		Title:    "Compliance Summary",
		RowLabel: "Product",
		Labels: map[string]string{
			"emissions_attributable_for_compliance": "Emissions attributable for compliance",
			"emissions_limit":                       "Emissions limit",
			"excess_emissions":                      "Excess emissions",
			"credited_emissions":                    "Credited emissions",
			"reduction_factor":                      "Reduction factor",
			"tightening_rate":                       "Tightening rate",
			"compliance_units":                      "Compliance units",
			"allocated_industrial_process_emissions": "Allocated industrial process emissions",
			"allocated_compliance_emissions":         "Allocated compliance emissions",
		},
		DecimalPlaces: 4,
		SuppressZero:  true,
	}
}

func OperationEmissionSummaryConfig() Config {
	return Config{
		Title: "Operation Emission Summary",
		Labels: map[string]string{
			"attributable_for_reporting":           "Attributable for reporting",
			"attributable_for_reporting_threshold": "Attributable for reporting threshold",
			"reporting_only_emission":              "Reporting-only emission",
		},
		DecimalPlaces: 4,
	}
}
