package i18n

// UI label keys.
const (
	LabelTitle          = "label.title"
	LabelInputData      = "label.input_data"
	LabelAITool         = "label.ai_tool"
	LabelScore          = "label.score"
	LabelModifier       = "label.modifier"
	LabelType           = "label.type"
	LabelProvider       = "label.provider"
	LabelRiskScore      = "label.risk_score"
	LabelRiskLevel      = "label.risk_level"
	LabelActionRequired = "label.action_required"
	LabelApprover       = "label.approver"
	LabelMatrix         = "label.matrix"
	LabelSelectBoth     = "label.select_both"
	LabelLanguage       = "label.language"
)

// Builtin returns the shipped dictionary: English UI labels plus German for
// the UI and the default catalog text.
func Builtin() Dictionary {
	return Dictionary{
		"en": {
			LabelTitle:          "AI Tool Risk Assessment",
			LabelInputData:      "Input Data",
			LabelAITool:         "AI Tool",
			LabelScore:          "Score",
			LabelModifier:       "Modifier",
			LabelType:           "Type",
			LabelProvider:       "Provider",
			LabelRiskScore:      "Risk Score",
			LabelRiskLevel:      "Risk Level",
			LabelActionRequired: "Action Required",
			LabelApprover:       "Approver",
			LabelMatrix:         "Risk Matrix",
			LabelSelectBoth:     "Select an input data category and an AI tool to see the risk assessment.",
			LabelLanguage:       "Language",
		},
		"de": {
			LabelTitle:          "Risikobewertung für KI-Werkzeuge",
			LabelInputData:      "Eingabedaten",
			LabelAITool:         "KI-Werkzeug",
			LabelScore:          "Punktzahl",
			LabelModifier:       "Modifikator",
			LabelType:           "Typ",
			LabelProvider:       "Anbieter",
			LabelRiskScore:      "Risikowert",
			LabelRiskLevel:      "Risikostufe",
			LabelActionRequired: "Erforderliche Maßnahme",
			LabelApprover:       "Genehmigung durch",
			LabelMatrix:         "Risikomatrix",
			LabelSelectBoth:     "Wählen Sie eine Datenkategorie und ein KI-Werkzeug, um die Risikobewertung zu sehen.",
			LabelLanguage:       "Sprache",

			"Public":       "Öffentlich",
			"Internal":     "Intern",
			"Confidential": "Vertraulich",
			"Restricted":   "Streng vertraulich",

			"Information approved for public release, such as marketing material and published documentation": "Zur Veröffentlichung freigegebene Informationen, etwa Marketingmaterial und veröffentlichte Dokumentation",
			"General business information not intended for public release":                                   "Allgemeine Geschäftsinformationen, die nicht zur Veröffentlichung bestimmt sind",
			"Sensitive business information such as contracts, financials or customer lists":                 "Sensible Geschäftsinformationen wie Verträge, Finanzdaten oder Kundenlisten",
			"Personal data, credentials, regulated or trade-secret information":                              "Personenbezogene Daten, Zugangsdaten, regulierte Informationen oder Geschäftsgeheimnisse",

			"Enterprise":  "Unternehmenslizenz",
			"Self-hosted": "Selbst betrieben",
			"Consumer":    "Privatkundenangebot",

			"Low":      "Niedrig",
			"Medium":   "Mittel",
			"High":     "Hoch",
			"Critical": "Kritisch",

			"No additional action required":                            "Keine weiteren Maßnahmen erforderlich",
			"Document usage and inform line manager":                   "Nutzung dokumentieren und Vorgesetzte informieren",
			"Security review and data protection assessment required": "Sicherheitsprüfung und Datenschutz-Folgenabschätzung erforderlich",
			"Usage prohibited without formal exception":                "Nutzung ohne formale Ausnahmegenehmigung untersagt",

			"None":                         "Keine",
			"Line Manager":                 "Vorgesetzte Person",
			"Information Security Officer": "Informationssicherheitsbeauftragte Person",
			"CISO":                         "CISO",
		},
	}
}
