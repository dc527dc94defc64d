package catalog

// Default returns the built-in catalog. It matches DefaultYAML.
func Default() *Catalog {
	c, err := NewBuilder().
		Input("Public", 0, "Information approved for public release, such as marketing material and published documentation").
		Input("Internal", 2, "General business information not intended for public release").
		Input("Confidential", 4, "Sensitive business information such as contracts, financials or customer lists").
		Input("Restricted", 6, "Personal data, credentials, regulated or trade-secret information").
		Tool("Microsoft 365 Copilot", "Enterprise", "Microsoft", 0).
		Tool("ChatGPT Enterprise", "Enterprise", "OpenAI", 1).
		Tool("GitHub Copilot Business", "Enterprise", "GitHub", 1).
		Tool("Local LLM", "Self-hosted", "Internal IT", 0).
		Tool("ChatGPT Free", "Consumer", "OpenAI", 2).
		Tool("Browser Extension Assistant", "Consumer", "Various", 3).
		TypeScore("Enterprise", 0).
		TypeScore("Self-hosted", 1).
		TypeScore("Consumer", 3).
		Tier(0, 2, "Low", "No additional action required", "None").
		Tier(3, 5, "Medium", "Document usage and inform line manager", "Line Manager").
		Tier(6, 8, "High", "Security review and data protection assessment required", "Information Security Officer").
		Tier(9, 99, "Critical", "Usage prohibited without formal exception", "CISO").
		Build()
	if err != nil {
		panic(err)
	}
	return c
}

// DefaultYAML returns a commented catalog for init-catalog.
func DefaultYAML() string {
	return `# toolrisk catalog
# Generated by: toolrisk init-catalog
#
# Risk score = input_data.score + ai_type_scores[tool.type] + tool.modifier
# The first risk level (top to bottom) whose range contains the score wins.
# Ranges are inclusive and should cover every reachable score without gaps;
# run "toolrisk validate" after editing.
#
# Key order below is the display order of options and of the risk matrix.

# Data sensitivity categories.
input_data:
  Public:
    score: 0
    description: "Information approved for public release, such as marketing material and published documentation"
  Internal:
    score: 2
    description: "General business information not intended for public release"
  Confidential:
    score: 4
    description: "Sensitive business information such as contracts, financials or customer lists"
  Restricted:
    score: 6
    description: "Personal data, credentials, regulated or trade-secret information"

# AI tools. type must name an entry in ai_type_scores.
ai_tools:
  Microsoft 365 Copilot:
    type: Enterprise
    provider: Microsoft
    modifier: 0
  ChatGPT Enterprise:
    type: Enterprise
    provider: OpenAI
    modifier: 1
  GitHub Copilot Business:
    type: Enterprise
    provider: GitHub
    modifier: 1
  Local LLM:
    type: Self-hosted
    provider: Internal IT
    modifier: 0
  ChatGPT Free:
    type: Consumer
    provider: OpenAI
    modifier: 2
  Browser Extension Assistant:
    type: Consumer
    provider: Various
    modifier: 3

# Base score per AI type.
ai_type_scores:
  Enterprise: 0
  Self-hosted: 1
  Consumer: 3

# Risk levels. action and approver are also translation keys.
risk_levels:
  - range: [0, 2]
    level: Low
    action: "No additional action required"
    approver: "None"
  - range: [3, 5]
    level: Medium
    action: "Document usage and inform line manager"
    approver: "Line Manager"
  - range: [6, 8]
    level: High
    action: "Security review and data protection assessment required"
    approver: "Information Security Officer"
  - range: [9, 99]
    level: Critical
    action: "Usage prohibited without formal exception"
    approver: "CISO"
`
}
