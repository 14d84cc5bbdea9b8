package main

import "strconv"

func toInt(s string) int {
	n, _ := strconv.Atoi(s)
	return n
}
