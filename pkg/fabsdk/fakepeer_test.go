/*
Copyright IBM Corp. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package fabsdk

import (
	"archive/zip"
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strconv"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/ibm-blockchain/ibc-go/pkg/common/providers/fab"
	"github.com/stretchr/testify/require"
)

const chaincodeSource = `package main

type SimpleChaincode struct{}

func (t *SimpleChaincode) Run(stub *shim.ChaincodeStub, function string, args []string) ([]byte, error) {
	if function == "init" {
		return t.init(stub, args)
	} else if function == "write" {
		return t.write(stub, args)
	} else if function == "init_marble" {
		return t.init_marble(stub, args)
	}
	return nil, errors.New("Received unknown function invocation")
}
`

const fakeDeployedName = "9a3c5e7b1d2f4a6c8e0b"

// fakePeer serves the REST API of a peer and a chaincode archive
type fakePeer struct {
	*httptest.Server

	height    uint64
	downloads int32

	mutex    sync.Mutex
	requests []fab.InvocationRequest
	enrolled []string
}

func newFakePeer(t *testing.T) *fakePeer {
	p := &fakePeer{height: 1}
	archive := buildArchive(t)

	mux := http.NewServeMux()
	mux.HandleFunc("/chain", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, fab.ChainStats{Height: atomic.LoadUint64(&p.height), CurrentBlockHash: "hash"})
	})
	mux.HandleFunc("/chain/blocks/", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, fab.Block{StateHash: "state-" + r.URL.Path[len("/chain/blocks/"):]})
	})
	mux.HandleFunc("/registrar", func(w http.ResponseWriter, r *http.Request) {
		var req fab.EnrollRequest
		json.NewDecoder(r.Body).Decode(&req)
		if req.EnrollSecret == "bad" {
			w.WriteHeader(http.StatusUnauthorized)
			writeJSON(w, fab.Response{Error: "login failed"})
			return
		}
		p.mutex.Lock()
		p.enrolled = append(p.enrolled, req.EnrollID)
		p.mutex.Unlock()
		writeJSON(w, fab.Response{OK: "Login successful for user '" + req.EnrollID + "'."})
	})
	mux.HandleFunc("/devops/query", func(w http.ResponseWriter, r *http.Request) {
		req := p.record(r)
		writeJSON(w, fab.Response{OK: fmt.Sprintf("%v", req.ChaincodeSpec.CtorMsg.Args)})
	})
	mux.HandleFunc("/devops/invoke", func(w http.ResponseWriter, r *http.Request) {
		p.record(r)
		atomic.AddUint64(&p.height, 1)
		writeJSON(w, fab.Response{OK: "invoked"})
	})
	mux.HandleFunc("/devops/deploy", func(w http.ResponseWriter, r *http.Request) {
		var spec fab.ChaincodeSpec
		json.NewDecoder(r.Body).Decode(&spec)
		p.mutex.Lock()
		p.requests = append(p.requests, fab.InvocationRequest{ChaincodeSpec: spec})
		p.mutex.Unlock()
		atomic.AddUint64(&p.height, 1)
		writeJSON(w, fab.Response{OK: "success", Message: fakeDeployedName})
	})
	mux.HandleFunc("/archive.zip", func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&p.downloads, 1)
		w.Write(archive)
	})

	p.Server = httptest.NewServer(mux)
	return p
}

func (p *fakePeer) record(r *http.Request) fab.InvocationRequest {
	var req fab.InvocationRequest
	json.NewDecoder(r.Body).Decode(&req)
	p.mutex.Lock()
	p.requests = append(p.requests, req)
	p.mutex.Unlock()
	return req
}

func (p *fakePeer) lastRequest() fab.InvocationRequest {
	p.mutex.Lock()
	defer p.mutex.Unlock()
	return p.requests[len(p.requests)-1]
}

func (p *fakePeer) enrollments() []string {
	p.mutex.Lock()
	defer p.mutex.Unlock()
	return append([]string{}, p.enrolled...)
}

func (p *fakePeer) hostPort(t *testing.T) (string, int) {
	u, err := url.Parse(p.URL)
	require.NoError(t, err)
	port, err := strconv.Atoi(u.Port())
	require.NoError(t, err)
	return u.Hostname(), port
}

func buildArchive(t *testing.T) []byte {
	buf := new(bytes.Buffer)
	w := zip.NewWriter(buf)
	for name, content := range map[string]string{
		"marbles-master/README.md":            "marbles",
		"marbles-master/chaincode/marbles.go": chaincodeSource,
	} {
		f, err := w.Create(name)
		require.NoError(t, err)
		_, err = f.Write([]byte(content))
		require.NoError(t, err)
	}
	require.NoError(t, w.Close())
	return buf.Bytes()
}

func writeJSON(w http.ResponseWriter, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(v)
}
