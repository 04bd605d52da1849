package main

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/sirupsen/logrus"
	"golang.org/x/term"

	"qrng-server/pkg/model"
)

var command = flag.String("c", "operator", "specifies the command (operator)")

func main() {
	flag.Parse()

	switch *command {
	case "operator":
		username := getUsername()
		if username == "" {
			os.Exit(1)
		}

		password := getPassword()
		if password == "" {
			os.Exit(1)
		}

		operator, err := model.CreateOperator(context.Background(), username, password)
		if err != nil {
			logrus.WithError(err).Fatal("could not create operator")
		}

		fmt.Printf("Created operator %d (%s)\n", operator.ID, operator.Username)

	default:
		logrus.Fatalf("unknown command: %s", *command)
	}
}

func getUsername() string {
	fmt.Print("Username: ")
	reader := bufio.NewReader(os.Stdin)
	str, err := reader.ReadString('\n')
	if err != nil {
		logrus.WithError(err).Warn("could not read username")
	}

	return strings.TrimRight(str, "\r\n")
}

func getPassword() string {
	for {
		fmt.Print("Password: ")
		pwBytes, err := term.ReadPassword(0)
		if err != nil {
			continue
		}
		fmt.Println("")

		password := strings.TrimRight(string(pwBytes), "\r\n")

		if password == "" {
			return ""
		}

		if len(password) < 6 {
			_, _ = fmt.Fprintf(os.Stderr, "password must be 6 or more characters\n")
			continue
		}

		return password
	}
}
