package main

// Sample is one design sent to /analyze-design.
type Sample struct {
	Name    string
	DocType string
	Heading string
	Text    string
	Fonts   []string
}

// Samples cover the common document kinds at increasing text length.
// Used by default benchmark mode (--quality=false) for performance measurement.
var Samples = []Sample{
	{
		Name:  "sale",
		Text:  "Buy now, 50% off today only!",
		Fonts: []string{"Comic Sans", "Arial"},
	},
	{
		Name:    "poster",
		DocType: "a poster",
		Heading: "Summer Jazz Nights",
		Text:    "Summer Jazz Nights. Live music every Friday in July at the Riverside Amphitheatre. Doors open 7pm. Bring a blanket, food trucks on site.",
		Fonts:   []string{"Playfair Display", "Lato"},
	},
	{
		Name:    "menu",
		DocType: "a restaurant menu",
		Heading: "Trattoria Nonna",
		Text: `Antipasti
Bruschetta al pomodoro 8
Carpaccio di manzo 14

Primi
Tagliatelle al ragù 16
Risotto ai funghi porcini 18

Secondi
Saltimbocca alla romana 24
Branzino al forno 26

Dolci
Tiramisù della casa 9
Panna cotta ai frutti di bosco 8`,
		Fonts: []string{"Papyrus", "Times New Roman", "Brush Script"},
	},
	{
		Name:    "report",
		DocType: "an annual report cover",
		Heading: "2025 Annual Report",
		Text: `Northwind Logistics 2025 Annual Report. Delivering resilience across every mile.
Revenue grew 14% year over year while carbon intensity per shipment fell 9%. This report
covers our financial performance, our fleet electrification programme, the opening of
three regional hubs and the governance changes approved at the last general meeting.
Letter from the Chair. Financial highlights. Operations review. Sustainability.
Risk management. Board of directors. Consolidated financial statements.`,
		Fonts: []string{"Helvetica Neue", "Georgia"},
	},
}

// QualitySamples exercise edge cases: no fonts, many fonts, odd headings.
// Used by --quality mode to inspect the verdicts by eye.
var QualitySamples = []Sample{
	{
		Name: "no fonts",
		Text: "Grand opening this Saturday! Free coffee for the first 100 customers.",
	},
	{
		Name:    "wedding",
		DocType: "a wedding invitation",
		Heading: "Ana & Luis",
		Text:    "Together with their families, Ana and Luis request the pleasure of your company at their wedding on the fourteenth of June at four in the afternoon.",
		Fonts:   []string{"Great Vibes", "Impact"},
	},
	{
		Name:    "safety sign",
		DocType: "a warning sign",
		Heading: "DANGER",
		Text:    "DANGER. High voltage. Authorised personnel only.",
		Fonts:   []string{"Comic Sans", "Bebas Neue"},
	},
	{
		Name:    "kids party",
		DocType: "a birthday party flyer",
		Heading: "Mia turns 6!",
		Text:    "Come celebrate Mia's 6th birthday with games, cake and a bouncy castle. Sunday 3pm at the park.",
		Fonts:   []string{"Comic Sans", "Baloo", "Fredoka", "Courier New", "Garamond"},
	},
	{
		Name:    "resume",
		DocType: "a resume",
		Heading: "Jordan Lee, Senior Data Engineer",
		Text:    "Senior data engineer with eight years building streaming pipelines. Experience: Kafka, Spark, Airflow. Led migration of 40 batch jobs to real time.",
		Fonts:   []string{"Roboto", "Roboto Mono"},
	},
}
