package main

import (
	"bufio"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/ovoloshko/task-manager/internal/client/api"
	"github.com/ovoloshko/task-manager/internal/client/input"
)

var (
	version   string
	buildDate string
)

// repl runs the interactive shell loop, accepting commands to register,
// log in, and inspect the authenticated user.
func repl(client *api.Client, in *bufio.Reader, out *os.File) {
	for {
		fmt.Fprint(out, "task-manager> ")
		line, err := in.ReadString('\n')
		if err != nil {
			break
		}
		args := strings.Fields(strings.TrimSpace(line))
		if len(args) == 0 {
			continue
		}
		switch args[0] {
		case "help":
			fmt.Fprintln(out, "Available commands: help, register, login, whoami, ping, exit")
		case "register":
			username, err := input.ReadLine(in, "username: ", out)
			if err != nil {
				fmt.Fprintln(out, "error:", err)
				continue
			}
			password, err := input.ReadPassword("password: ", out)
			if err != nil {
				fmt.Fprintln(out, "error:", err)
				continue
			}
			id, err := client.Register(username, password)
			if err != nil {
				fmt.Fprintln(out, "error:", err)
				continue
			}
			fmt.Fprintln(out, "Registered with id", id)
		case "login":
			username, err := input.ReadLine(in, "username: ", out)
			if err != nil {
				fmt.Fprintln(out, "error:", err)
				continue
			}
			password, err := input.ReadPassword("password: ", out)
			if err != nil {
				fmt.Fprintln(out, "error:", err)
				continue
			}
			grant, err := client.Login(username, password)
			if err != nil {
				fmt.Fprintln(out, "error:", err)
				continue
			}
			fmt.Fprintf(out, "Logged in, token valid for %d seconds\n", grant.ExpiresIn)
		case "whoami":
			username, err := client.CurrentUser()
			if err != nil {
				fmt.Fprintln(out, "error:", err)
				continue
			}
			fmt.Fprintln(out, username)
		case "ping":
			if err := client.Ping(); err != nil {
				fmt.Fprintln(out, "error:", err)
				continue
			}
			fmt.Fprintln(out, "pong")
		case "exit":
			fmt.Fprintln(out, "Bye")
			return
		default:
			fmt.Fprintln(out, "Unknown command. Type 'help' for a list of commands.")
		}
	}
}

// main parses command-line flags and starts the interactive shell.
func main() {
	var (
		baseURL string
		showVer bool
	)

	flag.StringVar(&baseURL, "url", "http://localhost:8080", "server base URL")
	flag.BoolVar(&showVer, "version", false, "show build version and date")
	flag.Parse()

	if showVer {
		fmt.Printf("task-manager Client\nVersion: %s\nBuild Date: %s\n", version, buildDate)
		return
	}

	repl(api.New(baseURL), bufio.NewReader(os.Stdin), os.Stdout)
}
