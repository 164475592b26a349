// Package domain contains core domain types for the NeuroSafe client.
package domain

// RiskLevel is the three-value severity classification returned by the
// external analysis service.
type RiskLevel string

const (
	RiskLow    RiskLevel = "Low"
	RiskMedium RiskLevel = "Medium"
	RiskHigh   RiskLevel = "High"
)

// Valid returns true if the risk level is one of the known values.
func (r RiskLevel) Valid() bool {
	switch r {
	case RiskLow, RiskMedium, RiskHigh:
		return true
	}
	return false
}

// Environment is the self-reported stress context submitted with an analysis.
type Environment string

const (
	EnvCalm        Environment = "Calm"
	EnvStressed    Environment = "Stressed"
	EnvOverwhelmed Environment = "Overwhelmed"
)

// Valid returns true if the environment is one of the known values.
func (e Environment) Valid() bool {
	switch e {
	case EnvCalm, EnvStressed, EnvOverwhelmed:
		return true
	}
	return false
}
