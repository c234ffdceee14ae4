package util

import (
	"regexp"
	"strings"
	"unicode/utf8"
)

var tagRegex = regexp.MustCompile(`#(\S+)`)

// ExtractTags 只负责提取去重后的标签列表
func ExtractTags(rawContent string) []string {
	matches := tagRegex.FindAllStringSubmatch(rawContent, -1)

	tagSet := make(map[string]struct{})
	var tags []string

	for _, m := range matches {
		if len(m) > 1 {
			tagName := m[1]

			tagName = strings.Trim(tagName, ".,，。!?！？")

			if tagName != "" {
				if _, exists := tagSet[tagName]; !exists {
					tagSet[tagName] = struct{}{}
					tags = append(tags, tagName)
				}
			}
		}
	}

	return tags
}

// ContentFeatures 帖子内容特征
type ContentFeatures struct {
	Length       int
	HasMedia     bool
	MediaCount   int
	HasHashtags  bool
	HashtagCount int
}

// ExtractContentFeatures 按字符数统计长度，话题数按去重后的标签计
func ExtractContentFeatures(content string, mediaCount int) ContentFeatures {
	tags := ExtractTags(content)
	if mediaCount < 0 {
		mediaCount = 0
	}
	return ContentFeatures{
		Length:       utf8.RuneCountInString(content),
		HasMedia:     mediaCount > 0,
		MediaCount:   mediaCount,
		HasHashtags:  len(tags) > 0,
		HashtagCount: len(tags),
	}
}
