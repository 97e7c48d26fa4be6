package domain

//CatalogRecord is the flat, field-keyed representation of a catalog entry.
//It is produced either by the harvest extractor or read from a catalog file,
//and consumed once by the profile serializer. Multilingual overrides are not
//stored inline; they live in the label store keyed by the record id.
type CatalogRecord struct {
	ID          string `json:"id" yaml:"id"`
	Identifier  string `json:"identifier" yaml:"identifier"`
	Title       string `json:"title" yaml:"title"`
	Description string `json:"notes" yaml:"notes"`
	URL         string `json:"url" yaml:"url"`

	Theme     []string `json:"theme" yaml:"theme"`
	Language  []string `json:"language" yaml:"language"`
	Frequency string   `json:"frequency" yaml:"frequency"`

	GeographicalName        []string `json:"geographical_name" yaml:"geographical_name"`
	GeographicalGeonamesURL string   `json:"geographical_geonames_url" yaml:"geographical_geonames_url"`

	PublisherName       string `json:"publisher_name" yaml:"publisher_name"`
	PublisherIdentifier string `json:"publisher_identifier" yaml:"publisher_identifier"`
	HolderName          string `json:"holder_name" yaml:"holder_name"`
	HolderIdentifier    string `json:"holder_identifier" yaml:"holder_identifier"`
	CreatorName         string `json:"creator_name" yaml:"creator_name"`
	CreatorIdentifier   string `json:"creator_identifier" yaml:"creator_identifier"`

	// CreatorNames carries localized creator names keyed by locale, as
	// produced by harvest extraction. The serializer only consumes the
	// scalar CreatorName/CreatorIdentifier pair.
	CreatorNames map[string]string `json:"creator_names,omitempty" yaml:"creator_names,omitempty"`

	LicenseID    string `json:"license_id" yaml:"license_id"`
	LicenseURL   string `json:"license_url" yaml:"license_url"`
	LicenseTitle string `json:"license_title" yaml:"license_title"`

	AlternateIdentifier string            `json:"alternate_identifier" yaml:"alternate_identifier"`
	ConformsTo          []Conformance     `json:"conforms_to,omitempty" yaml:"conforms_to,omitempty"`
	TemporalCoverage    *TemporalCoverage `json:"temporal_coverage,omitempty" yaml:"temporal_coverage,omitempty"`

	Issued   string `json:"issued" yaml:"issued"`
	Modified string `json:"modified" yaml:"modified"`

	OwningOrganisationID string `json:"owner_org" yaml:"owner_org"`

	Distributions []Distribution `json:"resources" yaml:"resources"`
}

//Distribution is one downloadable or accessible rendition of a record.
type Distribution struct {
	ID          string `json:"id" yaml:"id"`
	Name        string `json:"name" yaml:"name"`
	Description string `json:"description" yaml:"description"`

	// Format is the free-text format name as harvested; DistributionFormat
	// is the already-mapped vocabulary code, when known.
	Format             string `json:"format" yaml:"format"`
	DistributionFormat string `json:"distribution_format" yaml:"distribution_format"`

	AccessURL  string `json:"access_url" yaml:"access_url"`
	LicenseURI string `json:"license_type" yaml:"license_type"`

	// RecordID is a back-reference only, not an ownership edge.
	RecordID string `json:"record_id" yaml:"record_id"`
}

//Conformance pairs a specification identifier with localized titles.
type Conformance struct {
	Identifier string            `json:"identifier" yaml:"identifier"`
	Title      map[string]string `json:"title" yaml:"title"`
}

//TemporalCoverage is a start/end pair; End may be empty.
type TemporalCoverage struct {
	Start string `json:"temporal_start" yaml:"temporal_start"`
	End   string `json:"temporal_end,omitempty" yaml:"temporal_end,omitempty"`
}

//Agent is a party referenced by name and identifier, attached to a record
//via a role specific relation.
type Agent struct {
	Role       string
	Name       string
	Identifier string
}

//Organisation is the resolved owning organisation behind a record, used to
//build the contact point node. Email, telephone and site are optional.
type Organisation struct {
	ID        string `yaml:"id"`
	Name      string `yaml:"name"`
	Email     string `yaml:"email,omitempty"`
	Telephone string `yaml:"telephone,omitempty"`
	Site      string `yaml:"site,omitempty"`
}

//License is an entry of the license registry.
type License struct {
	ID   string `yaml:"id"`
	Name string `yaml:"name"`
	URI  string `yaml:"uri"`
}
