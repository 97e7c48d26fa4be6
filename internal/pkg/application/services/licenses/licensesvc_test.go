package licenses

import (
	"bytes"
	"testing"

	"github.com/matryer/is"
)

func TestBuiltinDefaultIsAttribution(t *testing.T) {
	is := is.New(t)

	registry, err := NewRegistry(nil)
	is.NoErr(err)

	is.Equal(registry.Default().ID, "cc-by")
	is.Equal(registry.Default().URI, "https://creativecommons.org/licenses/by/4.0/")
}

func TestExplicitIDWinsOverOtherSignals(t *testing.T) {
	is := is.New(t)

	registry, err := NewRegistry(nil)
	is.NoErr(err)

	lic, ok := registry.FindByToken("some constraints mentioning cc-zero", "", "iodl", "")
	is.True(ok)
	is.Equal(lic.ID, "iodl")
}

func TestLicenseURLMatchesEmbeddedInText(t *testing.T) {
	is := is.New(t)

	registry, err := NewRegistry(nil)
	is.NoErr(err)

	lic, ok := registry.FindByToken("", "released under https://creativecommons.org/publicdomain/zero/1.0/ terms", "", "")
	is.True(ok)
	is.Equal(lic.ID, "cc-zero")
}

func TestUnknownSignalsMatchNothing(t *testing.T) {
	is := is.New(t)

	registry, err := NewRegistry(nil)
	is.NoErr(err)

	_, ok := registry.FindByToken("all rights reserved", "", "", "")
	is.Equal(ok, false)
}

func TestRegistryFromFile(t *testing.T) {
	is := is.New(t)

	registry, err := NewRegistry(bytes.NewBufferString(registryYaml))
	is.NoErr(err)

	is.Equal(registry.Default().ID, "custom")

	lic, ok := registry.FindByToken("", "", "other", "")
	is.True(ok)
	is.Equal(lic.Name, "Another License")
}

func TestEmptyRegistryFileFails(t *testing.T) {
	is := is.New(t)

	_, err := NewRegistry(bytes.NewBufferString("licenses: []"))
	is.True(err != nil)
}

const registryYaml string = `
licenses:
  - id: custom
    name: A Custom License
    uri: https://example.com/licenses/custom
  - id: other
    name: Another License
    uri: https://example.com/licenses/other
default: custom
`
