// Package mockdata generates a realistic maintenance workbook for local
// development and demos: a KPI catalogue sheet, a raw interventions
// sheet, and one weekly template sheet per country.
package mockdata

import (
	"fmt"

	"github.com/brianvoe/gofakeit/v6"
	"github.com/xuri/excelize/v2"
)

// Workbook sheet names.
const (
	CatalogueSheet = "KPI Catalogue"
	RawSheet       = "MNT Stages RAW"
)

var countryCodes = []string{"FR🇫🇷", "ES🇪🇸", "DE🇩🇪", "PT🇵🇹"}

var countryNames = map[string]string{
	"FR🇫🇷": "France",
	"ES🇪🇸": "Spain",
	"DE🇩🇪": "Germany",
	"PT🇵🇹": "Portugal",
}

// Rough city-center coordinates per country, jittered per row so
// distance calculations produce plausible values.
var countryCoords = map[string][2]float64{
	"France":   {48.8566, 2.3522},
	"Spain":    {40.4168, -3.7038},
	"Germany":  {52.5200, 13.4050},
	"Portugal": {38.7223, -9.1393},
}

var weeks = []string{"2025_W46", "2025_W47", "2025_W48"}

var clients = []string{"Orange", "Vodafone", "MasMovil", "Free"}

var statuses = []string{"Done", "Done", "Done", "Cancelled", "Pending", "Anulled"}

var rootCauses = []string{
	"Customer absent",
	"Access denied",
	"Missing equipment",
	"Weather",
	"Rescheduled by client",
}

var rawColumns = []string{
	"ID",
	"Country",
	"Planned Week",
	"Client",
	"Chosen Team / Technician",
	"Intervention Status",
	"Intervention Type",
	"Root Cause",
	"Planned Date",
	"Intervention Start Date",
	"Intervention Done Date",
	"Duration Minutes",
	"Latitude",
	"Longitude",
}

// Generate writes a complete workbook with n raw intervention rows.
// The same seed always produces the same workbook.
func Generate(path string, n int, seed int64) error {
	gofakeit.Seed(seed)

	f := excelize.NewFile()
	defer f.Close()

	if err := writeCatalogue(f); err != nil {
		return fmt.Errorf("catalogue sheet: %w", err)
	}
	if err := writeRaw(f, n); err != nil {
		return fmt.Errorf("raw sheet: %w", err)
	}
	for _, code := range countryCodes {
		name := CountrySheet(code)
		if err := writeCountry(f, name, countryNames[code], n/len(countryCodes)); err != nil {
			return fmt.Errorf("sheet %s: %w", name, err)
		}
	}

	// Drop the default sheet excelize creates.
	if err := f.DeleteSheet("Sheet1"); err != nil {
		return err
	}
	return f.SaveAs(path)
}

// CountrySheet returns the conventional weekly sheet name for a code.
func CountrySheet(code string) string {
	return "Weekly Template-" + code
}

func writeCatalogue(f *excelize.File) error {
	if _, err := f.NewSheet(CatalogueSheet); err != nil {
		return err
	}

	columns := []interface{}{
		"kpi_id", "kpi_name", "kpi_description", "aggregation_type",
		"source_table", "measure_field",
	}
	for i := 1; i <= 5; i++ {
		columns = append(columns,
			fmt.Sprintf("filter_%d_field", i),
			fmt.Sprintf("filter_%d_operator", i),
			fmt.Sprintf("filter_%d_value_type", i),
			fmt.Sprintf("filter_%d_value", i),
		)
	}
	for i := 1; i <= 5; i++ {
		columns = append(columns, fmt.Sprintf("root_cause_dim_%d", i))
	}
	if err := f.SetSheetRow(CatalogueSheet, "A1", &columns); err != nil {
		return err
	}

	rows := [][]interface{}{
		catalogueRow("total_jobs", "Total Jobs", "All interventions in scope", "COUNT", "", nil, nil),
		catalogueRow("completed_jobs", "Completed Jobs", "Interventions marked Done", "COUNT", "",
			[][4]string{{"Intervention Status", "equal", "static", "Done"}}, nil),
		catalogueRow("cancelled_jobs", "Cancelled Jobs", "Interventions cancelled or anulled", "COUNT", "",
			[][4]string{{"Intervention Status", "contains", "static", "Cancel"}},
			[]string{"Root Cause", "Client"}),
		catalogueRow("avg_duration", "Average Duration", "Mean intervention duration in minutes", "AVERAGE", "Duration Minutes",
			[][4]string{{"Intervention Status", "equal", "static", "Done"}}, nil),
		catalogueRow("completion_rate", "Completion Rate", "Completed over total, as a percentage", "RATIO",
			"completed_jobs / total_jobs", nil, nil),
	}
	for i, row := range rows {
		cell := fmt.Sprintf("A%d", i+2)
		if err := f.SetSheetRow(CatalogueSheet, cell, &row); err != nil {
			return err
		}
	}
	return nil
}

// catalogueRow assembles one definition row. Every KPI carries the two
// dynamic clauses that scope it to the caller's country and week;
// extra holds additional static clauses.
func catalogueRow(id, name, desc, agg, measure string, extra [][4]string, dims []string) []interface{} {
	row := []interface{}{id, name, desc, agg, RawSheet, measure}

	filters := [][4]string{
		{"Country", "equal", "dynamic", "selected_country"},
		{"Planned Week", "equal", "dynamic", "selected_week"},
	}
	filters = append(filters, extra...)
	for i := 0; i < 5; i++ {
		if i < len(filters) {
			row = append(row, filters[i][0], filters[i][1], filters[i][2], filters[i][3])
		} else {
			row = append(row, "", "", "", "")
		}
	}
	for i := 0; i < 5; i++ {
		if i < len(dims) {
			row = append(row, dims[i])
		} else {
			row = append(row, "")
		}
	}
	return row
}

func writeRaw(f *excelize.File, n int) error {
	if _, err := f.NewSheet(RawSheet); err != nil {
		return err
	}
	header := make([]interface{}, len(rawColumns))
	for i, c := range rawColumns {
		header[i] = c
	}
	if err := f.SetSheetRow(RawSheet, "A1", &header); err != nil {
		return err
	}

	technicians := make([]string, 8)
	for i := range technicians {
		technicians[i] = gofakeit.Name()
	}

	for i := 0; i < n; i++ {
		country := countryNames[countryCodes[gofakeit.Number(0, len(countryCodes)-1)]]
		base := countryCoords[country]
		status := statuses[gofakeit.Number(0, len(statuses)-1)]

		day := gofakeit.Number(10, 23)
		hour := gofakeit.Number(8, 17)
		planned := fmt.Sprintf("2025-11-%02d %02d:00:00", day, hour)
		start := fmt.Sprintf("2025-11-%02d %02d:%02d:00", day, hour, gofakeit.Number(0, 30))

		done := ""
		if status == "Done" {
			done = fmt.Sprintf("2025-11-%02d %02d:%02d:00", day, hour+1, gofakeit.Number(0, 59))
		}
		rootCause := ""
		if status != "Done" && status != "Pending" {
			rootCause = rootCauses[gofakeit.Number(0, len(rootCauses)-1)]
		}

		row := []interface{}{
			i + 1,
			country,
			weeks[gofakeit.Number(0, len(weeks)-1)],
			clients[gofakeit.Number(0, len(clients)-1)],
			technicians[gofakeit.Number(0, len(technicians)-1)],
			status,
			gofakeit.RandomString([]string{"Install", "Repair", "Survey"}),
			rootCause,
			planned,
			start,
			done,
			gofakeit.Number(30, 240),
			fmt.Sprintf("%.4f", base[0]+gofakeit.Float64Range(-0.3, 0.3)),
			fmt.Sprintf("%.4f", base[1]+gofakeit.Float64Range(-0.3, 0.3)),
		}
		cell := fmt.Sprintf("A%d", i+2)
		if err := f.SetSheetRow(RawSheet, cell, &row); err != nil {
			return err
		}
	}
	return nil
}

// writeCountry fills a weekly template sheet with the country's slice of
// the schedule. The layout mirrors the raw sheet minus the country
// column, matching how field teams maintain the real templates.
func writeCountry(f *excelize.File, sheet, country string, n int) error {
	if _, err := f.NewSheet(sheet); err != nil {
		return err
	}
	header := []interface{}{
		"Planned Week", "Client", "Chosen Team / Technician",
		"Intervention Status", "Planned Date", "Duration Minutes",
	}
	if err := f.SetSheetRow(sheet, "A1", &header); err != nil {
		return err
	}
	for i := 0; i < n; i++ {
		row := []interface{}{
			weeks[gofakeit.Number(0, len(weeks)-1)],
			clients[gofakeit.Number(0, len(clients)-1)],
			gofakeit.Name(),
			statuses[gofakeit.Number(0, len(statuses)-1)],
			fmt.Sprintf("2025-11-%02d %02d:00:00", gofakeit.Number(10, 23), gofakeit.Number(8, 17)),
			gofakeit.Number(30, 240),
		}
		cell := fmt.Sprintf("A%d", i+2)
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			return err
		}
	}
	return nil
}
