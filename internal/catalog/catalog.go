// Package catalog holds the fixed, ordered bacteria, drug and vaccine
// catalogs. Per-individual tables are arrays indexed by catalog position;
// the name tables here translate names to positions.
package catalog

const (
	NumBacteria = 21
	NumDrugs    = 41
	NumVaccines = 4
)

var bacteria = [NumBacteria]string{
	"acinetobacter_baumanii",
	"chlamydia_trachomatis",
	"enterobacter_cloacae",
	"enterococcus_faecalis",
	"enterococcus_faecium",
	"escherichia_coli",
	"group_a_streptococcus",
	"group_b_streptococcus",
	"haemophilus_influenzae",
	"klebsiella_pneumoniae",
	"moraxella_catarrhalis",
	"mycobacterium_tuberculosis",
	"neisseria_gonorrhoeae",
	"neisseria_meningitidis",
	"non_typhoidal_salmonella",
	"pseudomonas_aeruginosa",
	"salmonella_paratyphi",
	"salmonella_typhi",
	"shigella_spp",
	"staphylococcus_aureus",
	"streptococcus_pneumoniae",
}

var drugs = [NumDrugs]string{
	"amikacin",
	"amoxicillin",
	"amoxicillin_clavulanate",
	"ampicillin",
	"azithromycin",
	"cefazolin",
	"cefepime",
	"cefotaxime",
	"cefoxitin",
	"ceftazidime",
	"ceftriaxone",
	"cefuroxime",
	"chloramphenicol",
	"ciprofloxacin",
	"clarithromycin",
	"clindamycin",
	"colistin",
	"daptomycin",
	"doxycycline",
	"ertapenem",
	"erythromycin",
	"ethambutol",
	"fosfomycin",
	"gentamicin",
	"imipenem",
	"isoniazid",
	"levofloxacin",
	"linezolid",
	"meropenem",
	"metronidazole",
	"moxifloxacin",
	"nitrofurantoin",
	"oxacillin",
	"penicillin",
	"piperacillin_tazobactam",
	"pyrazinamide",
	"rifampicin",
	"tetracycline",
	"tigecycline",
	"trimethoprim_sulfamethoxazole",
	"vancomycin",
}

var vaccines = [NumVaccines]string{
	"haemophilus_influenzae",
	"streptococcus_pneumoniae",
	"salmonella_typhi",
	"escherichia_coli",
}

var (
	bacteriaIndex = buildIndex(bacteria[:])
	drugIndex     = buildIndex(drugs[:])
	vaccineIndex  = buildIndex(vaccines[:])
)

func buildIndex(names []string) map[string]int {
	idx := make(map[string]int, len(names))
	for i, n := range names {
		if _, dup := idx[n]; dup {
			panic("catalog: duplicate name " + n)
		}
		idx[n] = i
	}
	return idx
}

// Bacteria returns a copy of the bacteria catalog in catalog order.
func Bacteria() []string { return append([]string(nil), bacteria[:]...) }

// Drugs returns a copy of the drug catalog in catalog order.
func Drugs() []string { return append([]string(nil), drugs[:]...) }

// Vaccines returns a copy of the vaccine catalog in catalog order.
func Vaccines() []string { return append([]string(nil), vaccines[:]...) }

func BacteriaName(i int) string { return bacteria[i] }
func DrugName(i int) string     { return drugs[i] }
func VaccineName(i int) string  { return vaccines[i] }

func BacteriaIndex(name string) (int, bool) {
	i, ok := bacteriaIndex[name]
	return i, ok
}

func DrugIndex(name string) (int, bool) {
	i, ok := drugIndex[name]
	return i, ok
}

func VaccineIndex(name string) (int, bool) {
	i, ok := vaccineIndex[name]
	return i, ok
}
