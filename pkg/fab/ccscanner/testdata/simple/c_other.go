package main

import "github.com/openblockchain/obc-peer/openchain/chaincode/shim"

type OtherChaincode struct{}

func (o *SimpleChaincode) Run(stub *shim.ChaincodeStub, function string, args []string) ([]byte, error) {
	return o.ignored(stub, args)
}
