package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math/rand"
	"net/http"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
)

// User represents the structure of a user document to write
type User struct {
	Name  string `json:"name"`
	Age   int    `json:"age"`
	Email string `json:"email"`
}

// generateRandomName generates a random 6-letter name
func generateRandomName() string {
	const letters = "abcdefghijklmnopqrstuvwxyz"
	name := make([]byte, 6)
	for i := range name {
		name[i] = letters[rand.Intn(len(letters))]
	}
	// Capitalize first letter
	name[0] = name[0] - 32
	return string(name)
}

// generateRandomAge generates a random age between 18 and 99
func generateRandomAge() int {
	return rand.Intn(82) + 18
}

// indexUser writes a user through the alias, which must point at exactly one index
func indexUser(baseURL, alias, id string, user User) error {
	userJSON, err := json.Marshal(user)
	if err != nil {
		return fmt.Errorf("failed to marshal user: %w", err)
	}

	req, err := http.NewRequest(http.MethodPut, baseURL+"/"+alias+"/_doc/"+id, bytes.NewBuffer(userJSON))
	if err != nil {
		return fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to send request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated {
		return fmt.Errorf("unexpected status code: %d", resp.StatusCode)
	}

	return nil
}

// Seeds an alias with random users so a migration has documents to reindex.
// Run it while "go-esmigrate migrate" moves the alias to watch writes follow the swap.
func main() {
	if len(os.Args) < 3 {
		fmt.Println("Usage: go run test_scripts/seed_alias_load.go <alias> <number_of_users> [engine_url]")
		fmt.Println("Example: go run test_scripts/seed_alias_load.go users 1000")
		fmt.Println("Example: go run test_scripts/seed_alias_load.go users 1000 http://localhost:9200")
		os.Exit(1)
	}

	alias := os.Args[1]

	numUsers, err := strconv.Atoi(os.Args[2])
	if err != nil {
		fmt.Printf("Error: Invalid number of users '%s'. Please provide a valid integer.\n", os.Args[2])
		os.Exit(1)
	}
	if numUsers <= 0 {
		fmt.Println("Error: Number of users must be greater than 0")
		os.Exit(1)
	}

	serverURL := "http://localhost:9200"
	if len(os.Args) >= 4 {
		serverURL = strings.TrimRight(os.Args[3], "/")
	}

	fmt.Printf("Starting load: writing %d users through alias '%s' on %s\n", numUsers, alias, serverURL)
	fmt.Println("Press Ctrl+C to stop early")

	startTime := time.Now()
	successCount := 0
	errorCount := 0

	// Report every 10%
	reportInterval := max(1, numUsers/10)

	for i := 0; i < numUsers; i++ {
		name := generateRandomName()
		user := User{
			Name:  name,
			Age:   generateRandomAge(),
			Email: fmt.Sprintf("%s@example.com", strings.ToLower(name)),
		}

		if err := indexUser(serverURL, alias, uuid.NewString(), user); err != nil {
			errorCount++
			fmt.Printf("Error writing user %d (%s): %v\n", i+1, user.Name, err)
		} else {
			successCount++
		}

		if (i+1)%reportInterval == 0 || i == numUsers-1 {
			elapsed := time.Since(startTime)
			rate := float64(i+1) / elapsed.Seconds()
			fmt.Printf("Progress: %d/%d users (%.1f%%) - Rate: %.1f users/sec - Success: %d, Errors: %d\n",
				i+1, numUsers, float64(i+1)/float64(numUsers)*100, rate, successCount, errorCount)
		}
	}

	totalTime := time.Since(startTime)

	fmt.Println("\n" + strings.Repeat("=", 60))
	fmt.Println("SEED COMPLETE")
	fmt.Println(strings.Repeat("=", 60))
	fmt.Printf("Alias:                 %s\n", alias)
	fmt.Printf("Total users attempted: %d\n", numUsers)
	fmt.Printf("Successful writes:     %d\n", successCount)
	fmt.Printf("Failed writes:         %d\n", errorCount)
	fmt.Printf("Total time:            %v\n", totalTime)
	fmt.Printf("Average rate:          %.2f users/sec\n", float64(numUsers)/totalTime.Seconds())

	if errorCount > 0 {
		fmt.Printf("\nWarning: %d errors occurred during the seed\n", errorCount)
		os.Exit(1)
	}
}
