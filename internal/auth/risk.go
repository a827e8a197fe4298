package auth

// Risk scoring policy. Each automation signal contributes a fixed weight;
// with two boolean signals the score is implicitly capped at 100.
const (
	webdriverWeight = 50
	devToolsWeight  = 50

	// RiskThreshold is the caller-wide cutoff. Scores strictly above it
	// cause unconditional rejection before any storage access, on both
	// the login and the authorization path.
	RiskThreshold = 10
)

// Score computes the automation-risk score for a fingerprint, in [0,100].
// Pure and allocation-free: it must run before the store lock is ever
// taken, both for cost and to fail fast on flagged clients.
func Score(fp Fingerprint) int {
	score := 0
	if fp.Webdriver {
		score += webdriverWeight
	}
	if fp.DevTools {
		score += devToolsWeight
	}
	return score
}
