package matcher

// Rule tags identify which cascade rule produced a match.
const (
	RuleExact            = "R1_EXACT"
	RuleAmountDate       = "R2_AMOUNT_DATE_1D"
	RuleDateAmount       = "R3_DATE_AMOUNT_5"
	RuleDateAmountWindow = "R4_DATE_2D_AMOUNT_5"
)

// LigneMatch is one realized pairing of a bank transaction with an
// accounting transaction. At most one exists per bank id, and an
// accounting id appears in at most one LigneMatch.
type LigneMatch struct {
	BankID       int
	AccountingID int
	Score        int
	RuleApplied  string
	IsAmbiguous  bool
}

// Ambiguity records a bank transaction whose best candidate was not
// unique. CandidateAccountingIDs is ascending, has at least two entries,
// and always contains the accounting id that was ultimately chosen.
type Ambiguity struct {
	BankID                 int
	CandidateAccountingIDs []int
}

// RapprocheResult is the complete outcome of one Match invocation.
// UsedAccountingIDs is exactly the set of accounting ids appearing in
// Matches. The result is owned by the caller and never mutated by the
// engine afterwards.
type RapprocheResult struct {
	Matches           []LigneMatch
	Ambiguities       []Ambiguity
	UsedAccountingIDs map[int]bool
}
