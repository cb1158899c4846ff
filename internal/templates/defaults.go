package templates

import "github.com/pavelanni/commenter/internal/model"

// DefaultTemplate is the built-in math unit template.
var DefaultTemplate = model.CommentTemplate{
	ID:   model.MathTemplateID,
	Name: "Matematika: 1 skyrius",
	Kind: model.KindMath,
	Sections: model.TemplateSections{
		Intro:       "{Name} šį trimestrą mokėsi pirmojo skyriaus temų.",
		Context:     "Skyriaus metu {Name_Ko} žinios buvo tikrinamos trimis savarankiškais darbais.",
		Assessment:  "Pagal MYP kriterijus {Name_Kam} vidutiniškai pavyko pasiekti {MYP_Level} lygį.",
		Achievement: "Džiaugiuosi {Name_Kuo} ir linkiu toliau nuosekliai dirbti.",
		WeakIntro:   "Vis dėlto {Name_Kam} vertėtų pakartoti",
		WeakEnding:  "kad geriau įsisavintų {Subtopic_Word}.",
	},
	TopicDescriptions: model.TopicDescriptions{
		Section11: "apie natūraliųjų skaičių veiksmus",
		Section12: "apie paprastąsias trupmenas",
		Section13: "apie dešimtainius skaičius",
	},
	GrammarRules: model.GrammarRules{
		Singular: model.WordForms{Topic: "skyrių", Subtopic: "šią temą"},
		Plural:   model.WordForms{Topic: "skyrius", Subtopic: "šias temas"},
	},
}

// EnglishDiagnostic1Template is the built-in English diagnostic test template.
var EnglishDiagnostic1Template = model.CommentTemplate{
	ID:   model.EnglishDiagnosticTemplateID,
	Name: "Anglų kalba: diagnostinis testas",
	Kind: model.KindEnglishDiagnostic,
	Sections: model.TemplateSections{
		Intro:       "{Name} atliko anglų kalbos diagnostinį testą.",
		Context:     "Testą sudarė trys dalys: skaitymas, klausymas ir rašymas.",
		Assessment:  "Skaitymo dalyje {Name_Kam} pavyko surinkti {Paper1_Percent}%, klausymo – {Paper2_Percent}%, rašymo – {Paper3_Percent}%.",
		Achievement: "Bendras rezultatas – {Total_Percent}%.",
		WeakIntro:   "Daugiausia dėmesio {Name_Kam} reikėtų skirti",
		WeakEnding:  "nes šios srities rezultatas buvo {Weak_Area_Percent}%.",
	},
	TopicDescriptions: model.TopicDescriptions{
		Section11: "skaitymo įgūdžiams",
		Section12: "klausymo įgūdžiams",
		Section13: "rašymo įgūdžiams",
	},
	GrammarRules: model.GrammarRules{
		Singular: model.WordForms{Topic: "sritis", Subtopic: "įgūdis"},
		Plural:   model.WordForms{Topic: "sritys", Subtopic: "įgūdžiai"},
	},
}

// EnglishUnit1Template is the built-in English unit 1 summative template.
// Section 1.3 describes both vocabulary and grammar.
var EnglishUnit1Template = model.CommentTemplate{
	ID:   model.EnglishUnitTemplateID,
	Name: "Anglų kalba: 1 skyriaus testas",
	Kind: model.KindEnglishUnit,
	Sections: model.TemplateSections{
		Intro:       "{Name} baigė pirmąjį anglų kalbos skyrių.",
		Context:     "Skyriaus testas tikrino klausymą, skaitymą, žodyną ir gramatiką.",
		Assessment:  "Klausymo dalyje {Name_Kam} pavyko surinkti {Lis_Score} iš {Lis_Max}, skaitymo – {Read_Score} iš {Read_Max}, žodyno – {Voc_Score} iš {Voc_Max}, gramatikos – {Gr_Score} iš {Gr_Max}.",
		Achievement: "Iš viso surinkta {Total_Score} balų ({Total_Percent}%).",
		WeakIntro:   "Daugiausia dėmesio {Name_Kam} reikėtų skirti",
		WeakEnding:  "nes šios srities rezultatas buvo {Weak_Area_Percent}%.",
	},
	TopicDescriptions: model.TopicDescriptions{
		Section11: "klausymo įgūdžiams",
		Section12: "skaitymo įgūdžiams",
		Section13: "žodynui ir gramatikai",
	},
	GrammarRules: model.GrammarRules{
		Singular: model.WordForms{Topic: "sritis", Subtopic: "įgūdis"},
		Plural:   model.WordForms{Topic: "sritys", Subtopic: "įgūdžiai"},
	},
}

// Defaults returns a fresh copy of the built-in templates in their canonical
// order.
func Defaults() []model.CommentTemplate {
	return []model.CommentTemplate{DefaultTemplate, EnglishDiagnostic1Template, EnglishUnit1Template}
}

// KindForID returns the kind of a built-in template id.
func KindForID(id string) (model.TemplateKind, bool) {
	switch id {
	case model.MathTemplateID:
		return model.KindMath, true
	case model.EnglishDiagnosticTemplateID:
		return model.KindEnglishDiagnostic, true
	case model.EnglishUnitTemplateID:
		return model.KindEnglishUnit, true
	}
	return "", false
}
