/*
Copyright IBM Corp. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package fab

// PeerConfig is a peer as declared in the network configuration
type PeerConfig struct {
	ID      string `mapstructure:"id" json:"id"`
	APIHost string `mapstructure:"api_host" json:"api_host"`
	APIPort int    `mapstructure:"api_port" json:"api_port"`
	APIURL  string `mapstructure:"api_url" json:"api_url"`
}

// UserConfig is an enrollable user as declared in the network configuration
type UserConfig struct {
	Username string `mapstructure:"username" json:"username"`
	Secret   string `mapstructure:"secret" json:"secret"`
	UserType int    `mapstructure:"usertype" json:"usertype"`
}

// NetworkConfig is the peers and users of a network
type NetworkConfig struct {
	Peers []PeerConfig `mapstructure:"peers"`
	Users []UserConfig `mapstructure:"users"`
}

// ChaincodeConfig locates the chaincode source and, once deployed, its name
type ChaincodeConfig struct {
	ZipURL       string `mapstructure:"zip_url"`
	UnzipDir     string `mapstructure:"unzip_dir"`
	GitURL       string `mapstructure:"git_url"`
	DeployedName string `mapstructure:"deployed_name"`
}

// PeerDescriptor is a registered peer. Identity (JSON "user") is the
// enrollment ID bound by the last successful registration.
type PeerDescriptor struct {
	Name     string `json:"name" yaml:"name"`
	APIHost  string `json:"api_host" yaml:"api_host"`
	APIPort  int    `json:"api_port" yaml:"api_port"`
	ID       string `json:"id" yaml:"id"`
	SSL      bool   `json:"ssl" yaml:"ssl"`
	Identity string `json:"user,omitempty" yaml:"user,omitempty"`
}

// Target returns the REST endpoint of the peer
func (p PeerDescriptor) Target() Target {
	return Target{Host: p.APIHost, Port: p.APIPort, SSL: p.SSL}
}
