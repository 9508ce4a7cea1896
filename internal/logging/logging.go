package logging

import (
	"os"
	"strings"

	"github.com/sirupsen/logrus"
)

// New 依設定建立 logrus logger；format 為 "text" 時輸出人類可讀格式，其餘一律 JSON
// 無法解析的 level 會退回 info
func New(level, format string) *logrus.Logger {
	log := logrus.New()
	log.SetOutput(os.Stdout)

	if strings.EqualFold(format, "text") {
		log.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	} else {
		log.SetFormatter(&logrus.JSONFormatter{})
	}

	lvl, err := logrus.ParseLevel(level)
	if err != nil {
		lvl = logrus.InfoLevel
	}
	log.SetLevel(lvl)
	return log
}
