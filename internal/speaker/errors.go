package speaker

import "fmt"

// Step names, as used on the command line.
const (
	StepResolveCode  = "resolve-code"
	StepResolveGist  = "resolve-gist"
	StepResolveImage = "resolve-image"
	StepPresentation = "presentation"
)

// Credential names a piece of configuration a step cannot run without.
type Credential string

const (
	GitHubToken         Credential = "GitHub token"
	OutputDirectoryPath Credential = "image output directory path"
	TwitterCredential   Credential = "Twitter credential"
)

// MissingCredentialError is a configuration error: the step needs a
// credential or path that was not supplied.
type MissingCredentialError struct {
	Step       string
	Credential Credential
}

func (e MissingCredentialError) Error() string {
	return fmt.Sprintf("lack of %s for %s", e.Credential, e.Step)
}

func (MissingCredentialError) Category() string { return "SpeakerError" }
