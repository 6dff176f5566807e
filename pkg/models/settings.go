package models

import (
	"encoding/json"
	"fmt"

	"github.com/grafana/grafana-plugin-sdk-go/backend"
)

// PluginSettingsError represents an error specifically related to plugin settings.
type PluginSettingsError struct {
	Msg string
	Err error // Wrapped error
}

func (e *PluginSettingsError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("plugin settings error: %s: %v", e.Msg, e.Err)
	}
	return fmt.Sprintf("plugin settings error: %s", e.Msg)
}

func (e *PluginSettingsError) Unwrap() error {
	return e.Err
}

// PluginSettings holds the configuration settings for the GA4 data source.
// PropertyID is the numeric GA4 property the reports run against.
// CredentialsPath optionally points at a service account JSON file on the
// Grafana host; when both it and the secure inline JSON are empty the Google
// client falls back to Application Default Credentials
// (GOOGLE_APPLICATION_CREDENTIALS).
type PluginSettings struct {
	PropertyID      string                `json:"propertyID"`
	CredentialsPath string                `json:"credentialsPath"`
	Secrets         *SecretPluginSettings `json:"-"`
}

// SecretPluginSettings holds sensitive data, currently the service account
// key JSON pasted into the datasource configuration page.
type SecretPluginSettings struct {
	ServiceAccountJSON string `json:"serviceAccountJson"`
}

// LoadPluginSettings unmarshals the JSON data and decrypted secure JSON data
// from Grafana's DataSourceInstanceSettings into a PluginSettings struct.
func LoadPluginSettings(source backend.DataSourceInstanceSettings) (*PluginSettings, error) {
	settings := PluginSettings{}
	err := json.Unmarshal(source.JSONData, &settings)
	if err != nil {
		return nil, &PluginSettingsError{Msg: "could not unmarshal PluginSettings JSON", Err: err}
	}

	settings.Secrets = loadSecretPluginSettings(source.DecryptedSecureJSONData)

	return &settings, nil
}

// loadSecretPluginSettings extracts secure data from the decrypted map.
// An empty service account key is not an error here: the datasource may rely
// on a credentials file path or ambient environment credentials instead.
func loadSecretPluginSettings(source map[string]string) *SecretPluginSettings {
	return &SecretPluginSettings{
		ServiceAccountJSON: source["serviceAccountJson"],
	}
}
