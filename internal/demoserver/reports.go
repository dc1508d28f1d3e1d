package demoserver

import (
	"time"

	"github.com/carbonlens/ghgreview/internal/model"
)

// DemoReportID is the report served by the demo backend.
const DemoReportID = "demo"

func demoVersions() map[string]*model.ReportVersion {
	base := map[string]any{
		"report_operation": map[string]any{
			"operation_name": "Lakeview Cement Works",
			"operation_type": "Single Facility Operation",
		},
		"report_person_responsible": map[string]any{
			"first_name": "Dana",
			"last_name":  "Okafor",
		},
		"report_compliance_summary": map[string]any{
			"excess_emissions": "1200.5",
		},
	}
	head := map[string]any{
		"report_operation": map[string]any{
			"operation_name": "Lakeview Cement Works Ltd.",
			"operation_type": "Single Facility Operation",
		},
		"report_person_responsible": map[string]any{
			"first_name": "Dana",
			"last_name":  "Okafor-Reyes",
		},
		"report_compliance_summary": map[string]any{
			"excess_emissions": "980.25",
		},
	}
	return map[string]*model.ReportVersion{
		"1": {
			ReportID:  DemoReportID,
			VersionID: "1",
			Document:  base,
			CreatedAt: time.Date(2024, 4, 2, 9, 30, 0, 0, time.UTC),
		},
		"2": {
			ReportID:  DemoReportID,
			VersionID: "2",
			Document:  head,
			CreatedAt: time.Date(2024, 5, 17, 14, 5, 0, 0, time.UTC),
		},
	}
}

// demoDiff covers every section of a review: operation info, person
// responsible, facility activity data down to fuel level, a whole added
// activity, emission summaries, production data, allocation, non
// attributable records, additional data, new entrant, electricity import,
// compliance, plus a timestamp record the engine must filter out.
func demoDiff() []model.ChangeRecord {
	facility := "root['facility_reports']['Lakeview Cement Plant']"
	combustion := facility + "['activity_data']['General stationary combustion excluding line tracing']"

	return []model.ChangeRecord{
		{
			Field:      "root['report_operation']['operation_name']",
			OldValue:   "Lakeview Cement Works",
			NewValue:   "Lakeview Cement Works Ltd.",
			ChangeType: model.ChangeModified,
		},
		{
			Field:      "root['report_person_responsible']['last_name']",
			OldValue:   "Okafor",
			NewValue:   "Okafor-Reyes",
			ChangeType: model.ChangeModified,
		},
		{
			Field:      facility + "['facility_name']",
			OldValue:   "Lakeview Cement Plant",
			NewValue:   "Lakeview Cement Plant - Kiln 2",
			ChangeType: model.ChangeModified,
		},
		{
			Field:      combustion + "['source_types']['gsc_type_units']['units'][0]['fuels'][0]['annual_fuel_amount']",
			OldValue:   "14200.5",
			NewValue:   "15830.25",
			ChangeType: model.ChangeModified,
		},
		{
			Field:      combustion + "['source_types']['gsc_type_units']['units'][0]['fuels'][0]['emissions'][0]['emission']",
			OldValue:   "38250.7",
			NewValue:   "42710.3",
			ChangeType: model.ChangeModified,
		},
		{
			Field:    facility + "['activity_data']['Flaring']",
			OldValue: nil,
			NewValue: map[string]any{
				"source_types": map[string]any{
					"flare_stacks": map[string]any{
						"units": []any{
							map[string]any{
								"flare_description": "Emergency flare stack",
								"emissions": []any{
									map[string]any{
										"gas_type": "CO2",
										"emission": "512.4",
									},
								},
							},
						},
					},
				},
			},
			ChangeType: model.ChangeAdded,
		},
		{
			Field:      facility + "['emission_summary']['attributable_for_reporting']",
			OldValue:   "98100.2",
			NewValue:   "103560.9",
			ChangeType: model.ChangeModified,
		},
		{
			Field:      facility + "['report_products'][1]['annual_production']",
			OldValue:   "250000",
			NewValue:   "262500",
			ChangeType: model.ChangeModified,
		},
		{
			Field:      facility + "['report_emission_allocation']['allocated_quantity']",
			OldValue:   "97000.0",
			NewValue:   "97000.00004",
			ChangeType: model.ChangeModified,
		},
		{
			Field:      facility + "['reportnonattributableemissions_records'][0]['gas_type']",
			OldValue:   nil,
			NewValue:   "CH4",
			ChangeType: model.ChangeAdded,
		},
		{
			Field:      "root['report_additional_data']['capture_emissions']",
			OldValue:   "0",
			NewValue:   "350.75",
			ChangeType: model.ChangeModified,
		},
		{
			Field:      "root['report_new_entrant']['assertion_statement']",
			OldValue:   false,
			NewValue:   true,
			ChangeType: model.ChangeModified,
		},
		{
			Field:      "root['report_electricity_import_data']['import_specified_electricity']",
			OldValue:   "12000",
			NewValue:   "13450",
			ChangeType: model.ChangeModified,
		},
		{
			Field:      "root['report_operation_emission_summary']['attributable_for_reporting']",
			OldValue:   "98100.2",
			NewValue:   "103560.9",
			ChangeType: model.ChangeModified,
		},
		{
			Field:      "root['report_compliance_summary']['excess_emissions']",
			OldValue:   "1200.5",
			NewValue:   "980.25",
			ChangeType: model.ChangeModified,
		},
		{
			Field:      "root['updated_at']",
			OldValue:   "2024-04-02T09:30:00Z",
			NewValue:   "2024-05-17T14:05:00Z",
			ChangeType: model.ChangeModified,
		},
	}
}
