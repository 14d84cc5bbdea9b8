/*
Copyright IBM Corp. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package fabsdk

import (
	"context"
	"os"

	"github.com/ibm-blockchain/ibc-go/pkg/client/chaincode"
	"github.com/ibm-blockchain/ibc-go/pkg/client/event"
	"github.com/ibm-blockchain/ibc-go/pkg/common/errors/status"
	"github.com/ibm-blockchain/ibc-go/pkg/common/providers/fab"
	"github.com/ibm-blockchain/ibc-go/pkg/fab/keyvaluestore"
	"github.com/pkg/errors"
)

// Load registers the configured network, enrolls the configured users and
// loads the chaincode. Registration failures are logged and do not stop
// the load.
func (sdk *SDK) Load(ctx context.Context) (*chaincode.Client, error) {
	network := sdk.config.Network()
	cc := sdk.config.Chaincode()

	var missing []string
	if len(network.Peers) == 0 {
		missing = append(missing, "the option 'network.peers' is required")
	}
	missing = append(missing, missingChaincodeFields(cc, "chaincode.")...)
	if len(missing) > 0 {
		return nil, inputError("load", missing)
	}

	if err := sdk.LoadNetwork(ctx); err != nil {
		return nil, err
	}
	return sdk.LoadChaincode(ctx)
}

// LoadNetwork registers the configured peers, selecting the first one, and
// enrolls the configured users. Registration failures are logged only.
func (sdk *SDK) LoadNetwork(ctx context.Context) error {
	network := sdk.config.Network()
	if len(network.Peers) == 0 {
		return inputError("network", []string{"the option 'network.peers' is required"})
	}
	if err := sdk.registry.RegisterNetwork(network.Peers); err != nil {
		return err
	}
	if len(network.Users) > 0 {
		if err := sdk.identity.RegisterUsers(ctx, network.Users); err != nil {
			logger.Warnf("user registration incomplete: %s", err)
		}
	}
	return nil
}

// LoadChaincode obtains the chaincode source, scans it and binds the
// operations it dispatches. Without a deployed name the temp directory is
// cleared first; with one, the deployed chaincode is adopted. A configured
// local chaincode path that exists is used instead of downloading.
func (sdk *SDK) LoadChaincode(ctx context.Context) (*chaincode.Client, error) {
	cc := sdk.config.Chaincode()
	if missing := missingChaincodeFields(cc, ""); len(missing) > 0 {
		return nil, inputError("load_chaincode", missing)
	}

	sdk.chaincode.Configure(cc)
	if cc.DeployedName == "" {
		if err := sdk.fetcher.Clear(); err != nil {
			return nil, err
		}
	}

	dir, err := sdk.sourceDir(ctx, cc)
	if err != nil {
		return nil, err
	}

	result, err := sdk.scanner.ScanDir(dir)
	if err != nil {
		return nil, errors.WithMessagef(err, "scanning chaincode in %s failed", dir)
	}
	bound := sdk.chaincode.Bind(result.Operations)
	logger.Infof("bound %d chaincode operation(s) from %s", len(bound), result.File)

	return sdk.chaincode, nil
}

func (sdk *SDK) sourceDir(ctx context.Context, cc fab.ChaincodeConfig) (string, error) {
	if local := sdk.config.Client().ChaincodePath; local != "" {
		if info, err := os.Stat(local); err == nil && info.IsDir() {
			logger.Info("Found chaincode in local file system")
			return local, nil
		}
	}
	logger.Info("Downloading zip")
	return sdk.fetcher.Fetch(ctx, cc.ZipURL, cc.UnzipDir)
}

func missingChaincodeFields(cc fab.ChaincodeConfig, prefix string) []string {
	var missing []string
	if cc.ZipURL == "" {
		missing = append(missing, "the option '"+prefix+"zip_url' is required")
	}
	if cc.UnzipDir == "" {
		missing = append(missing, "the option '"+prefix+"unzip_dir' is required")
	}
	if cc.GitURL == "" {
		missing = append(missing, "the option '"+prefix+"git_url' is required")
	}
	return missing
}

func inputError(op string, missing []string) error {
	details := make([]interface{}, len(missing))
	for i, m := range missing {
		details[i] = m
	}
	logger.Errorf("Input Error - %s %v", op, missing)
	return status.New(status.InputValidation, status.BadRequest.ToInt32(), "input error", details)
}

// Save writes the chaincode details to dir, named after the deployed name,
// and returns the path of the file written
func (sdk *SDK) Save(dir string) (string, error) {
	if dir == "" {
		return "", status.Newf(status.InputValidation, status.BadRequest, "save directory is required")
	}
	details := sdk.chaincode.Details()
	path, err := keyvaluestore.SaveDetails(dir, &details)
	if err != nil {
		return "", err
	}
	logger.Infof("saved chaincode details to %s", path)
	return path, nil
}

// ReadDetails parses chaincode details previously written by Save
func (sdk *SDK) ReadDetails(path string) (*fab.ChaincodeDetails, error) {
	return keyvaluestore.ReadDetails(path)
}

// Restore adopts saved chaincode details: the peers, their bound identities,
// the deployed name and the bound operations
func (sdk *SDK) Restore(details *fab.ChaincodeDetails) (*chaincode.Client, error) {
	if err := sdk.registry.Restore(details.Peers); err != nil {
		return nil, err
	}
	sdk.chaincode.Configure(fab.ChaincodeConfig{
		ZipURL:       details.ZipURL,
		UnzipDir:     details.UnzipDir,
		GitURL:       details.GitURL,
		DeployedName: details.DeployedName,
	})
	sdk.chaincode.Bind(details.Func)
	return sdk.chaincode, nil
}

// ChainStats returns the chain statistics of the selected peer
func (sdk *SDK) ChainStats(ctx context.Context) (*fab.ChainStats, error) {
	return sdk.ledger.ChainStats(ctx)
}

// BlockStats returns the block with the given id from the selected peer
func (sdk *SDK) BlockStats(ctx context.Context, id uint64) (*fab.Block, error) {
	return sdk.ledger.BlockStats(ctx, id)
}

// SwitchPeer selects the peer at index. It returns false, changing nothing,
// if the index is out of range.
func (sdk *SDK) SwitchPeer(index int) bool {
	return sdk.registry.Switch(index)
}

// Register enrolls enrollID on the peer at index and binds it to that peer
func (sdk *SDK) Register(ctx context.Context, index int, enrollID, enrollSecret string) error {
	return sdk.identity.Register(ctx, index, enrollID, enrollSecret)
}

// MonitorBlockHeight registers handler for chain growth and starts the
// block height monitor. Close stops it.
func (sdk *SDK) MonitorBlockHeight(ctx context.Context, handler event.GrowthHandler) error {
	sdk.monitor.RegisterHandler(handler)
	if sdk.monitor.IsRunning() {
		return nil
	}
	return sdk.monitor.Start(ctx)
}
