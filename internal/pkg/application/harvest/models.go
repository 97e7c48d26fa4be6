// Package harvest turns value bags extracted from harvested ISO19139
// metadata into internal catalog records, mapping free text onto controlled
// vocabulary codes and parsing agent identities out of responsible party
// strings.
package harvest

// Document is the value bag a metadata harvester produces for one source
// record. Fields hold raw harvested text; nothing in here has been mapped
// to controlled vocabularies yet.
type Document struct {
	GUID     string `json:"guid"`
	Title    string `json:"title"`
	Abstract string `json:"abstract"`
	URL      string `json:"url"`

	Keywords           []Keyword          `json:"keywords"`
	ResponsibleParties []ResponsibleParty `json:"responsible-organisation"`

	FrequencyOfUpdate string `json:"frequency-of-update"`
	DateReleased      string `json:"date-released"`
	DateUpdated       string `json:"date-updated"`

	DatasetLanguages []string `json:"dataset-language"`
	MetadataLanguage string   `json:"metadata-language"`

	TemporalExtentBegin string `json:"temporal-extent-begin"`
	TemporalExtentEnd   string `json:"temporal-extent-end"`

	ConformitySpecificationTitle string      `json:"conformity-specification-title"`
	ConformityTitles             []TextGroup `json:"conformity-title"`

	AccessConstraints string `json:"access-constraints"`
	License           string `json:"license"`
	LicenseID         string `json:"license-id"`
	LicenseURL        string `json:"license-url"`

	Resources []Resource `json:"resource-locator"`
}

// Keyword is one descriptive keyword group with its thesaurus of origin.
// Thesaurus identity decides which controlled vocabulary the names are
// matched against.
type Keyword struct {
	Names               []string `json:"keyword"`
	ThesaurusTitle      string   `json:"thesaurus-title"`
	ThesaurusIdentifier string   `json:"thesaurus-identifier"`
}

//ResponsibleParty names an organisation in a given metadata role.
type ResponsibleParty struct {
	OrganisationName string      `json:"organisation-name"`
	Role             string      `json:"role"`
	LocalizedNames   []TextGroup `json:"organisation-name-localized"`
}

//TextGroup is a localized text fragment.
type TextGroup struct {
	Text   string `json:"text"`
	Locale string `json:"locale"`
}

//Resource is one harvested resource locator.
type Resource struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	URL         string `json:"url"`
	Format      string `json:"format"`
}
