package logfile

import (
	"fmt"
	"os"
	"regexp"
	"slices"
	"strconv"
	"strings"
)

// segmentFileNamePattern is the file pattern all segment files need to follow.
var segmentFileNamePattern = regexp.MustCompile(`^\d{10}\.seg$`)

// GetSegments returns the logFileIDs present in directory, sorted in ascending order.
func GetSegments(directory string) ([]int32, error) {
	dirEntries, err := os.ReadDir(directory)
	if err != nil {
		return nil, fmt.Errorf("reading directory %q: %w", directory, err)
	}

	result := make([]int32, 0, len(dirEntries))
	for _, dirEntry := range dirEntries {
		if dirEntry.IsDir() {
			continue
		}
		if !segmentFileNamePattern.MatchString(dirEntry.Name()) {
			continue
		}
		logFileID, err := parseSegmentFileName(dirEntry.Name())
		if err != nil {
			// This error should never occur when our file name pattern is correct.
			return nil, fmt.Errorf("parsing logFileID from file name %q: %w", dirEntry.Name(), err)
		}
		result = append(result, logFileID)
	}

	// os.ReadDir returns entries already sorted by name, and our fixed-width name pattern makes lexical order
	// match numeric order. We sort again anyway since that guarantee is cheap to keep and easy to lose by accident.
	slices.Sort(result)
	return result, nil
}

// LatestSegment returns the highest logFileID present in directory, and false if directory holds no segments.
func LatestSegment(directory string) (int32, bool, error) {
	segments, err := GetSegments(directory)
	if err != nil {
		return 0, false, err
	}
	if len(segments) == 0 {
		return 0, false, nil
	}
	return segments[len(segments)-1], true, nil
}

// parseSegmentFileName extracts the logFileID encoded in a segment file's base name (as produced by
// segmentFileName). It is the inverse used when a caller only has a file path, such as the replay CLI.
func parseSegmentFileName(name string) (int32, error) {
	logFileID, err := strconv.ParseInt(strings.TrimSuffix(name, ".seg"), 10, 32)
	if err != nil {
		return 0, fmt.Errorf("parsing logFileID from file name %q: %w", name, err)
	}
	return int32(logFileID), nil
}
