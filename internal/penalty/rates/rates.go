// Package rates maps recorded discrepancies to contractual penalty amounts.
//
// The contract prices violations two ways: long-form article clauses (articles
// A through D) and the short checkbox phrases used on the CDR form. Each
// article clause is one record carrying its short code and amount, so the
// description↔code mapping cannot drift; the checkbox phrases are priced in a
// parallel index because several map to a tier other than their article's.
package rates

// Article is the contract article grouping a violation clause.
type Article string

const (
	ArticleA Article = "A" // 1000 SAR
	ArticleB Article = "B" // 1500 SAR
	ArticleC Article = "C" // 2000 SAR
	ArticleD Article = "D" // 2500 SAR
)

// Amount per article tier, in SAR.
func (a Article) Amount() int {
	switch a {
	case ArticleA:
		return 1000
	case ArticleB:
		return 1500
	case ArticleC:
		return 2000
	case ArticleD:
		return 2500
	}
	return 0
}

// DefaultAmount prices any discrepancy the table does not recognize. An
// unrecognized violation still produces a reviewable, non-zero charge rather
// than silently dropping it.
const DefaultAmount = 500

// Violation is one priced contract clause.
type Violation struct {
	Code        string
	Description string
	Article     Article
}

// Amount returns the clause's tier amount.
func (v Violation) Amount() int { return v.Article.Amount() }

// violations lists every contract clause, in article order. Codes are the
// cross-reference keys used in correspondence with the contractor.
var violations = []Violation{
	// Article (A) — 1000 SAR
	{"penalty_a1", "Failure to clean equipment daily or repair cleaning equipment properly and not following safety procedures.", ArticleA},
	{"penalty_a2", "Delay in submitting required correspondence, reports, and documents.", ArticleA},
	{"penalty_a3", "Failure to prepare and submit monthly employee task/area schedules on time.", ArticleA},
	{"penalty_a4", "Failure of contractor’s staff to comply with uniform, shoes, or displaying ID badges.", ArticleA},
	{"penalty_a5", "Failure to maintain personal hygiene (body, nails, hair, uniform).", ArticleA},
	{"penalty_a6", "Failure to provide clearance certificate for departing employees.", ArticleA},
	{"penalty_a7", "Failure to follow proper cleaning procedures for public areas as per policies.", ArticleA},
	{"penalty_a8", "Failure to collect non-medical waste on time or follow instructions for transport.", ArticleA},
	{"penalty_a9", "Delay in equipment maintenance causing work interruption.", ArticleA},

	// Article (B) — 1500 SAR
	{"penalty_b1", "Failure to supply daily consumables/tools for each site.", ArticleB},
	{"penalty_b2", "Failure to follow administrative directions (delivery delays, policy non-compliance, etc.).", ArticleB},
	{"penalty_b3", "Employee absence or late arrival without approval – per hour.", ArticleB},
	{"penalty_b4", "Failure to prepare/submit required professional training program.", ArticleB},
	{"penalty_b5", "Failure to place warning signs during cleaning in medical areas.", ArticleB},
	{"penalty_b6", "Failure to respond promptly to cleaning-related complaints.", ArticleB},
	{"penalty_b7", "Employee taking leave without prior approval.", ArticleB},
	{"penalty_b8", "Failure to collect non-medical waste from wings/medical areas.", ArticleB},

	// Article (C) — 2000 SAR
	{"penalty_c1", "Failure to meet management & supervision competence standards.", ArticleC},
	{"penalty_c2", "Improper handling of non-medical waste, exposing people/environment to harm.", ArticleC},
	{"penalty_c3", "Improper handling of medical waste, exposing people/environment to harm.", ArticleC},
	{"penalty_c4", "Failure to collect medical waste on time or follow transport procedures.", ArticleC},
	{"penalty_c5", "Failure to respond to emergencies (floods, fire, evacuation).", ArticleC},
	{"penalty_c6", "Use of unlicensed cleaning materials inside the facility.", ArticleC},
	{"penalty_c7", "Providing misleading information on manpower attendance or reports.", ArticleC},
	{"penalty_c8", "Hiring workers without approval.", ArticleC},
	{"penalty_c9", "Failure to pay workers’ salaries.", ArticleC},

	// Article (D) — 2500 SAR
	{"penalty_d1", "Failure to follow directives for cleaning patient rooms, ORs, and healthcare areas.", ArticleD},
	{"penalty_d2", "Failure to wear proper PPE in required areas.", ArticleD},
	{"penalty_d3", "Failure to inform project representative before employee exit or replacement.", ArticleD},
	{"penalty_d4", "Failure to fill any contract-defined position – per week per position.", ArticleD},
	{"penalty_d5", "Failure to fill vacant positions – per week per worker.", ArticleD},
	{"penalty_d6", "Negligence causing injuries or property damage – contractor bears costs.", ArticleD},
	{"penalty_d7", "Failure to follow infection control policies and safety procedures.", ArticleD},
	{"penalty_d8", "Improper use of chemicals exposing staff/patients/visitors to harm.", ArticleD},
	{"penalty_d9", "Issuing cleaning supplies or tools for non-work purposes.", ArticleD},
}

// checkboxAmounts prices the short CDR checkbox phrases. Kept as data, not
// derivation: the contract assigns some phrases a tier other than the article
// their clause appears under.
var checkboxAmounts = map[string]int{
	// Manpower
	"Not aware of EVS mission":                         1000,
	"Uncooperative staff":                              1000,
	"Poor communicator / non-English-speaking staff":   1000,
	"Unauthorized staff / No ID badge":                 1000,
	"Not approved uniform / No uniform":                1000,
	"Shortage of staff":                                1500,
	"Untrained staff / Not aware of chemical dilution": 2000,
	"Personal hygiene":                                 1000,

	// Material
	"Using unauthorized supplies":           2000,
	"Expired items":                         1500,
	"Shortage of supplies":                  1500,
	"No MSDS on site":                       2000,
	"Not maintaining minimum/maximum stock": 1500,

	// Equipment
	"Equipment not clean":                1000,
	"Unauthorized / untagged equipment":  1000,
	"Improper equipment handling":        1000,
	"Default of equipment":               1000,
	"No scheduled maintenance":           1000,
}

var (
	byDescription = func() map[string]Violation {
		m := make(map[string]Violation, len(violations))
		for _, v := range violations {
			m[v.Description] = v
		}
		return m
	}()
	byCode = func() map[string]Violation {
		m := make(map[string]Violation, len(violations))
		for _, v := range violations {
			m[v.Code] = v
		}
		return m
	}()
)

// Resolve prices one discrepancy label, matching either a long-form article
// clause or a checkbox phrase. Unknown labels get DefaultAmount; resolution
// never fails.
func Resolve(label string) int {
	if v, ok := byDescription[label]; ok {
		return v.Amount()
	}
	if amount, ok := checkboxAmounts[label]; ok {
		return amount
	}
	return DefaultAmount
}

// CodeFor returns the short cross-reference code of a long-form clause.
func CodeFor(description string) (string, bool) {
	v, ok := byDescription[description]
	return v.Code, ok
}

// DescriptionFor returns the long-form clause of a short code.
func DescriptionFor(code string) (string, bool) {
	v, ok := byCode[code]
	return v.Description, ok
}

// Violations returns the clause table in article order.
func Violations() []Violation {
	return violations
}
