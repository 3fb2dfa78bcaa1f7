package sat

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
)

// ParseDIMACS reads a CNF instance in DIMACS format: comment lines starting
// with "c", a "p cnf <variables> <clauses>" problem line and clauses as a
// stream of literal tokens where every 0 closes a clause. The format is
// token-based, so clauses may share a line or wrap across lines. A "%" line
// marks the logical end of the instance; anything after it is ignored.
func ParseDIMACS(reader io.Reader) (*SAT, error) {
	var (
		instance   SAT
		declared   uint64
		seenHeader bool
		clause     Clause
	)

	scanner := bufio.NewScanner(reader)
	// Generated instances may hold a whole clause on one line, which can
	// outgrow the default scanner buffer
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "c") {
			continue
		}
		if strings.HasPrefix(line, "%") {
			break
		}

		// Problem line
		if strings.HasPrefix(line, "p") {
			if seenHeader {
				return nil, fmt.Errorf("unexpected second problem line: %s", line)
			}
			parts := strings.Fields(line)
			if len(parts) != 4 || parts[1] != "cnf" {
				return nil, fmt.Errorf("invalid problem line: %s", line)
			}
			variables, err := strconv.ParseUint(parts[2], 10, 64)
			if err != nil {
				return nil, fmt.Errorf("invalid variable count: %w", err)
			}
			clauses, err := strconv.ParseUint(parts[3], 10, 64)
			if err != nil {
				return nil, fmt.Errorf("invalid clause count: %w", err)
			}
			instance.Variables = variables
			declared = clauses
			seenHeader = true
			continue
		}
		if !seenHeader {
			return nil, fmt.Errorf("clause before the problem line: %s", line)
		}

		// Clause tokens
		for _, token := range strings.Fields(line) {
			literal, err := strconv.ParseInt(token, 10, 64)
			if err != nil {
				return nil, fmt.Errorf("invalid literal '%s': %w", token, err)
			}
			if literal == 0 {
				instance.Clauses = append(instance.Clauses, clause)
				clause = nil
				continue
			}
			if uint64(Lit(literal).Var()) > instance.Variables {
				return nil, fmt.Errorf("literal %v is out of range for an instance with %v variables", literal, instance.Variables)
			}
			clause = append(clause, Lit(literal))
		}
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("error reading instance: %w", err)
	}
	if !seenHeader {
		return nil, fmt.Errorf("missing problem line")
	}
	if len(clause) > 0 {
		return nil, fmt.Errorf("unterminated clause at end of instance")
	}
	if uint64(len(instance.Clauses)) != declared {
		return nil, fmt.Errorf("instance declares %v clauses, found %v", declared, len(instance.Clauses))
	}

	return &instance, nil
}

func ParseDIMACSFile(fileName string) (*SAT, error) {
	file, err := os.Open(fileName)
	if err != nil {
		return nil, fmt.Errorf("could not open file: %w", err)
	}
	defer file.Close()

	return ParseDIMACS(file)
}
