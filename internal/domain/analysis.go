package domain

// MinTextLength is the minimum number of characters an agreement text must
// have before it is accepted for analysis.
const MinTextLength = 50

// AnalysisRequest is the payload submitted to the external analysis service.
// It is constructed per submission and never persisted on its own.
type AnalysisRequest struct {
	Text        string      `json:"text"`
	Environment Environment `json:"environment"`
}

// AnalysisResponse is the risk assessment returned by the external analysis
// service. Risks may be empty; RiskLevel is always one of the closed enum.
type AnalysisResponse struct {
	RiskLevel RiskLevel `json:"riskLevel"`
	Risks     []string  `json:"risks"`
	Warning   string    `json:"warning"`
}
