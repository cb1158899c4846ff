package model

// TemplateKind selects which generator a template feeds.
type TemplateKind string

const (
	// KindMath is the math unit template (SD tests, MYP levels, Cambridge scores).
	KindMath TemplateKind = "math"
	// KindEnglishDiagnostic is the English diagnostic test template (three papers).
	KindEnglishDiagnostic TemplateKind = "english-diagnostic"
	// KindEnglishUnit is the English unit 1 summative template.
	KindEnglishUnit TemplateKind = "english-unit"
)

// Valid reports whether k is one of the known kinds.
func (k TemplateKind) Valid() bool {
	switch k {
	case KindMath, KindEnglishDiagnostic, KindEnglishUnit:
		return true
	}
	return false
}

// Built-in template ids.
const (
	MathTemplateID              = "default-unit1"
	EnglishDiagnosticTemplateID = "english-diagnostic-1"
	EnglishUnitTemplateID       = "english-unit-1"
)

// TemplateSections are the fixed text fragments of a comment.
type TemplateSections struct {
	Intro       string `json:"intro"`
	Context     string `json:"context"`
	Assessment  string `json:"assessment"`
	Achievement string `json:"achievement"`
	WeakIntro   string `json:"weakIntro"`
	WeakEnding  string `json:"weakEnding"`
}

// TopicDescriptions describe what each test section covers.
type TopicDescriptions struct {
	Section11 string `json:"section_1_1"`
	Section12 string `json:"section_1_2"`
	Section13 string `json:"section_1_3"`
}

// WordForms is one grammatical number of the topic words.
type WordForms struct {
	Topic    string `json:"topic"`
	Subtopic string `json:"subtopic"`
}

// GrammarRules picks topic words by how many sections are weak.
type GrammarRules struct {
	Singular WordForms `json:"singular"`
	Plural   WordForms `json:"plural"`
}

// Forms returns the singular forms for one item and the plural forms otherwise.
func (g GrammarRules) Forms(count int) WordForms {
	if count == 1 {
		return g.Singular
	}
	return g.Plural
}

// CommentTemplate is a user-editable comment template. ID and Kind never
// change after creation.
type CommentTemplate struct {
	ID                string            `json:"id"`
	Name              string            `json:"name" validate:"required"`
	Kind              TemplateKind      `json:"kind,omitempty" validate:"required,oneof=math english-diagnostic english-unit"`
	Sections          TemplateSections  `json:"sections"`
	TopicDescriptions TopicDescriptions `json:"topicDescriptions"`
	GrammarRules      GrammarRules      `json:"grammarRules"`
}

// TemplatePatch is a partial template update. Nil fields are left unchanged.
type TemplatePatch struct {
	Name              *string            `json:"name,omitempty"`
	Sections          *TemplateSections  `json:"sections,omitempty"`
	TopicDescriptions *TopicDescriptions `json:"topicDescriptions,omitempty"`
	GrammarRules      *GrammarRules      `json:"grammarRules,omitempty"`
}

// Apply merges p into t and returns the result.
func (p TemplatePatch) Apply(t CommentTemplate) CommentTemplate {
	if p.Name != nil {
		t.Name = *p.Name
	}
	if p.Sections != nil {
		t.Sections = *p.Sections
	}
	if p.TopicDescriptions != nil {
		t.TopicDescriptions = *p.TopicDescriptions
	}
	if p.GrammarRules != nil {
		t.GrammarRules = *p.GrammarRules
	}
	return t
}

// MathTestData is the math bundle: three SD tests plus the standalone P1 grade.
type MathTestData struct {
	SD1P   Score `json:"sd1p"`
	SD1MYP Score `json:"sd1myp"`
	SD1C1  Score `json:"sd1c1"`
	SD1C2  Score `json:"sd1c2"`
	SD2P   Score `json:"sd2p"`
	SD2MYP Score `json:"sd2myp"`
	SD2C   Score `json:"sd2c"`
	SD3P   Score `json:"sd3p"`
	SD3MYP Score `json:"sd3myp"`
	SD3C   Score `json:"sd3c"`
	P1     Score `json:"p1"`
}

// EnglishDiagnosticData is the English diagnostic test bundle.
type EnglishDiagnosticData struct {
	D1Paper1Percent Score `json:"d1Paper1Percent"`
	D1Paper2Percent Score `json:"d1Paper2Percent"`
	D1Paper3Percent Score `json:"d1Paper3Percent"`
	D1TotalPercent  Score `json:"d1TotalPercent"`
}

// EnglishUnit1Data is the English unit 1 bundle. A max is 0 when its group
// has no data.
type EnglishUnit1Data struct {
	T1Lis          Score   `json:"t1Lis"`
	T1LisMax       float64 `json:"t1LisMax"`
	T1Read         Score   `json:"t1Read"`
	T1ReadMax      float64 `json:"t1ReadMax"`
	T1Voc          Score   `json:"t1Voc"`
	T1VocMax       float64 `json:"t1VocMax"`
	T1Gr           Score   `json:"t1Gr"`
	T1GrMax        float64 `json:"t1GrMax"`
	T1TotalScore   Score   `json:"t1TotalScore"`
	T1TotalPercent Score   `json:"t1TotalPercent"`
}

// WeakSection is a section or skill area below mastery.
type WeakSection struct {
	Section string  `json:"section"`
	Score   float64 `json:"score"`
}

// GeneratedComment is the output of one generator run for one student.
type GeneratedComment struct {
	Student       StudentRef    `json:"student"`
	Comment       string        `json:"comment"`
	MYPLevel      int           `json:"mypLevel"`
	WeakSections  []WeakSection `json:"weakSections"`
	SD1MYP        Score         `json:"sd1myp"`
	SD2MYP        Score         `json:"sd2myp"`
	SD3MYP        Score         `json:"sd3myp"`
	P1            Score         `json:"p1"`
	MYPBasedGrade Score         `json:"mypBasedGrade"`
	Deviation     Score         `json:"deviation"`
}

// MissingStudent lists what keeps a student out of generation.
type MissingStudent struct {
	Student       StudentRef `json:"student"`
	MissingFields []string   `json:"missing_fields"`
}

// ServerConfig holds runtime parameters set via CLI flags.
type ServerConfig struct {
	Lang              string // default UI language for labels (en, lt)
	Collation         string // language tag used to order students
	AdminPasswordHash []byte // bcrypt hash; empty disables auth on mutations
}
