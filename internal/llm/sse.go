package llm

import (
	"bufio"
	"errors"
	"io"
	"strings"
)

// streamSSE 逐行解析 text/event-stream 响应体，
// 每收到一个完整事件就把 data 部分交给 onData
func streamSSE(r io.Reader, onData func(data string) error) error {
	br := bufio.NewReader(r)
	var dataLines []string

	flush := func() error {
		if len(dataLines) == 0 {
			return nil
		}
		data := strings.Join(dataLines, "\n")
		dataLines = nil
		return onData(data)
	}

	for {
		line, err := br.ReadString('\n')
		if err != nil {
			if errors.Is(err, io.EOF) {
				return flush()
			}
			return err
		}
		line = strings.TrimRight(line, "\r\n")

		// 空行表示一个事件结束
		if line == "" {
			if err := flush(); err != nil {
				return err
			}
			continue
		}

		// 注释行
		if strings.HasPrefix(line, ":") {
			continue
		}

		if strings.HasPrefix(line, "data:") {
			dataLines = append(dataLines, strings.TrimSpace(strings.TrimPrefix(line, "data:")))
			continue
		}
	}
}
