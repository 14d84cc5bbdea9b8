package main

import (
	"errors"
	"fmt"

	"github.com/openblockchain/obc-peer/openchain/chaincode/shim"
)

type SimpleChaincode struct {
}

func (t *SimpleChaincode) Run(stub *shim.ChaincodeStub, function string, args []string) ([]byte, error) {
	if function == "init" {
		return t.init(stub, args)
	} else if function == "write" {
		return t.write(stub, args)
	} else if function == "transfer" {
		return t.transfer(stub, args)
	} else if function == "init" {
		return t.init(stub, args)
	}
	return nil, errors.New("Received unknown function invocation")
}

func (t *SimpleChaincode) Query(stub *shim.ChaincodeStub, function string, args []string) ([]byte, error) {
	if function == "read" {
		return t.read(stub, args)
	}
	return nil, errors.New("Received unknown function query")
}

func (t *SimpleChaincode) init(stub *shim.ChaincodeStub, args []string) ([]byte, error) {
	return nil, nil
}

func (t *SimpleChaincode) write(stub *shim.ChaincodeStub, args []string) ([]byte, error) {
	return nil, stub.PutState(args[0], []byte(args[1]))
}

func (t *SimpleChaincode) transfer(stub *shim.ChaincodeStub, args []string) ([]byte, error) {
	return nil, nil
}

func (t *SimpleChaincode) read(stub *shim.ChaincodeStub, args []string) ([]byte, error) {
	return stub.GetState(args[0])
}

func main() {
	err := shim.Start(new(SimpleChaincode))
	if err != nil {
		fmt.Printf("Error starting Simple chaincode: %s", err)
	}
}
