/*
Copyright © 2026 MSP Docs <maintainers@mspdocs.dev>
*/

package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/exec"
	"strings"

	"github.com/mspdocs/vendor-dump/vendorapi"
	"github.com/mspdocs/vendor-dump/vendors"
)

// resolveCredentials gathers auth material.  Environment variables win; the
// --api-key-cmd shell command is the fallback for the API key.  Secrets are
// deliberately not read from the config file — that file is meant to be
// committable.
func resolveCredentials() (vendors.Credentials, error) {
	creds := vendors.Credentials{
		APIKey:       os.Getenv("VENDOR_DUMP_API_KEY"),
		ClientID:     os.Getenv("VENDOR_DUMP_CLIENT_ID"),
		ClientSecret: os.Getenv("VENDOR_DUMP_CLIENT_SECRET"),
	}

	if creds.APIKey == "" && len(APIKeyCmd) > 0 {
		output, err := exec.Command(APIKeyCmd[0], APIKeyCmd[1:]...).Output()
		if err != nil {
			return vendors.Credentials{}, fmt.Errorf("vendor-dump: couldn't execute api-key-cmd '%v': %w", APIKeyCmd, err)
		}
		creds.APIKey = strings.Split(string(output), "\n")[0]
	}

	return creds, nil
}

// connectAPI looks up the vendor profile, authenticates (including the OAuth
// token exchange where the profile calls for it), and returns a ready client.
func connectAPI(ctx context.Context, client *http.Client) (*vendorapi.API, vendors.Profile, error) {
	if Vendor == "" {
		return nil, vendors.Profile{}, fmt.Errorf("vendor-dump: no vendor selected; use --vendor or set it in your config file")
	}

	profile, err := vendors.Lookup(Vendor)
	if err != nil {
		return nil, vendors.Profile{}, err
	}

	baseURL := Instance
	if baseURL == "" {
		baseURL = profile.BaseURL
	}

	creds, err := resolveCredentials()
	if err != nil {
		return nil, vendors.Profile{}, err
	}

	debugLog("authenticating against %s (%s)\n", baseURL, profile.Name)
	auth, err := profile.Authenticate(ctx, client, baseURL, creds)
	if err != nil {
		return nil, vendors.Profile{}, err
	}

	api, err := vendorapi.NewAPI(baseURL, auth)
	if err != nil {
		return nil, vendors.Profile{}, err
	}
	if client != nil {
		api.Client = client
	}

	return api, profile, nil
}
