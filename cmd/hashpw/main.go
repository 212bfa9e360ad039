// Command hashpw prints a bcrypt hash suitable for ADMIN_PASSWORD_HASH.
//
//	hashpw <password>
//
// The cost comes from BCRYPT_COST (default 12).
package main

import (
	"fmt"
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"

	"github.com/iliyamo/hotel-room-allocator/internal/utils"
)

func main() {
	_ = godotenv.Load()
	if len(os.Args) != 2 {
		log.Fatalf("usage: %s <password>", os.Args[0])
	}
	cost := 12
	if s := os.Getenv("BCRYPT_COST"); s != "" {
		n, err := strconv.Atoi(s)
		if err != nil {
			log.Fatalf("invalid int for BCRYPT_COST: %q", s)
		}
		cost = n
	}
	hash, err := utils.HashPassword(os.Args[1], cost)
	if err != nil {
		log.Fatal(err)
	}
	fmt.Println(hash)
}
