package main

type SimpleChaincode struct{}

func (t *SimpleChaincode) Invoke(function string) {
	t.write(function)
}

func (t *SimpleChaincode) write(string) {}
