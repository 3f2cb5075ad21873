package config

import (
	"github.com/zalando/go-keyring"

	"colsweep/pkg/models"
)

// keyringService namespaces colsweep entries in the OS keyring.
const keyringService = "colsweep"

// ResolvePassword returns the password for a connection: the config or
// environment value wins, then the OS keyring.
func ResolvePassword(conn *models.Connection) string {
	if conn.Password != "" {
		return conn.Password
	}
	if secret, err := keyring.Get(keyringService, conn.Name); err == nil {
		return secret
	}
	return ""
}

// StorePassword saves a connection password in the OS keyring so it
// never has to live in the config file.
func StorePassword(connName, password string) error {
	return keyring.Set(keyringService, connName, password)
}

// DeletePassword removes a stored connection password.
func DeletePassword(connName string) error {
	return keyring.Delete(keyringService, connName)
}
