package store

import "feedbackd/internal/platform/config"

func configRoot() config.Conf { return config.New() }
