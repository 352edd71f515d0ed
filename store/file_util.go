package store

import "os"

func IsExist(path string) (bool, error) {
	_, err := os.Stat(path)
	if err == nil {
		return true, nil
	}

	if os.IsNotExist(err) {
		return false, nil
	} else {
		return false, err
	}
}

// checkHome creates the data directory if it is missing
func checkHome(home string) error {
	isExist, err := IsExist(home)
	if err != nil {
		return err
	}
	if isExist {
		return nil
	}
	return os.MkdirAll(home, os.ModePerm)
}
