package backend

import (
	"errors"
	"fmt"

	"household/internal/config"
)

// FromAppConfig converts the application config to backend config. The
// Sheets mirror is chosen whenever a spreadsheet is configured.
func FromAppConfig(appConfig *config.Config) (Config, error) {
	if appConfig == nil {
		return Config{}, fmt.Errorf("app config is nil")
	}

	mirror := MemoryMirror
	if appConfig.SheetsEnabled() {
		mirror = SheetsMirror
	}

	return Config{
		SQLiteDBPath: appConfig.SQLiteDBPath,
		AMQPURL:      appConfig.AMQPURL,
		AMQPExchange: appConfig.AMQPExchange,
		AMQPQueue:    appConfig.AMQPQueue,

		Mirror:                   mirror,
		GoogleSpreadsheetID:      appConfig.GoogleSpreadsheetID,
		GoogleSheetName:          appConfig.GoogleSheetName,
		GoogleServiceAccountFile: appConfig.GoogleServiceAccountFile,
		GoogleServiceAccountJSON: appConfig.GoogleServiceAccountJSON,
	}, nil
}

// Validate validates the backend configuration
func (c Config) Validate() error {
	var errs []error
	if c.SQLiteDBPath == "" {
		errs = append(errs, errors.New("SQLite database path is required"))
	}
	if c.AMQPURL != "" && (c.AMQPExchange == "" || c.AMQPQueue == "") {
		errs = append(errs, errors.New("AMQP exchange and queue are required when AMQP is enabled"))
	}

	switch c.Mirror {
	case SheetsMirror:
		if c.GoogleSpreadsheetID == "" {
			errs = append(errs, errors.New("Google Spreadsheet ID is required for sheets mirror"))
		}
		if c.GoogleSheetName == "" {
			errs = append(errs, errors.New("Google Sheet name is required for sheets mirror"))
		}
		if c.GoogleServiceAccountFile == "" && c.GoogleServiceAccountJSON == "" {
			errs = append(errs, errors.New("either a service account file or inline JSON must be provided for sheets mirror"))
		}
	case MemoryMirror, "":
		// in-process mirror, nothing to check
	default:
		errs = append(errs, fmt.Errorf("invalid mirror type: %s", c.Mirror))
	}

	return errors.Join(errs...)
}

// GetMirrorTypes returns all valid mirror types
func GetMirrorTypes() []MirrorType {
	return []MirrorType{SheetsMirror, MemoryMirror}
}
