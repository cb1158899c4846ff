package templates

import "github.com/pavelanni/commenter/internal/model"

// Variable documents one placeholder usable in template text.
type Variable struct {
	Token       string               `json:"token"`
	Description string               `json:"description"`
	Kinds       []model.TemplateKind `json:"kinds"`
}

// MessageID is the i18n id of the variable description.
func (v Variable) MessageID() string {
	return "Var." + v.Token[1:len(v.Token)-1]
}

var (
	allKinds     = []model.TemplateKind{model.KindMath, model.KindEnglishDiagnostic, model.KindEnglishUnit}
	mathOnly     = []model.TemplateKind{model.KindMath}
	englishKinds = []model.TemplateKind{model.KindEnglishDiagnostic, model.KindEnglishUnit}
	diagOnly     = []model.TemplateKind{model.KindEnglishDiagnostic}
	unitOnly     = []model.TemplateKind{model.KindEnglishUnit}
)

var variables = []Variable{
	{"{Name}", "Student first name (nominative)", allKinds},
	{"{Name_Ko}", "Name, genitive case (ko?)", allKinds},
	{"{Name_Ka}", "Name, accusative case (ką?)", allKinds},
	{"{Name_Kuo}", "Name, instrumental case (kuo?)", allKinds},
	{"{Name_Kam}", "Name, dative case (kam?)", allKinds},
	{"{Name_Kur}", "Name, locative case (kur?)", allKinds},
	{"{Topic_Word}", "Topic word, singular or plural", allKinds},
	{"{Subtopic_Word}", "Subtopic word, singular or plural", allKinds},
	{"{Topic_Description}", "Description of the weak topics", allKinds},
	{"{MYP_Level}", "Average MYP level of SD1–SD3", mathOnly},
	{"{Sections}", "Weak section numbers (1.1, 1.2 ir 1.3)", mathOnly},
	{"{Weak_Area}", "Weakest skill area", englishKinds},
	{"{Weak_Area_Percent}", "Weakest skill area %", englishKinds},
	{"{Total_Percent}", "Total %", englishKinds},
	{"{Paper1_Percent}", "Diagnostic paper 1 (reading) %", diagOnly},
	{"{Paper2_Percent}", "Diagnostic paper 2 (listening) %", diagOnly},
	{"{Paper3_Percent}", "Diagnostic paper 3 (writing) %", diagOnly},
	{"{Lis_Score}", "Listening score", unitOnly},
	{"{Lis_Max}", "Listening max", unitOnly},
	{"{Read_Score}", "Reading score", unitOnly},
	{"{Read_Max}", "Reading max", unitOnly},
	{"{Voc_Score}", "Vocabulary score", unitOnly},
	{"{Voc_Max}", "Vocabulary max", unitOnly},
	{"{Gr_Score}", "Grammar score", unitOnly},
	{"{Gr_Max}", "Grammar max", unitOnly},
	{"{Total_Score}", "Total score", unitOnly},
}

// Variables returns the placeholders usable with kind; an empty kind
// returns all of them.
func Variables(kind model.TemplateKind) []Variable {
	var out []Variable
	for _, v := range variables {
		if kind == "" || containsKind(v.Kinds, kind) {
			out = append(out, v)
		}
	}
	return out
}

func containsKind(kinds []model.TemplateKind, k model.TemplateKind) bool {
	for _, x := range kinds {
		if x == k {
			return true
		}
	}
	return false
}
