package main

import (
	"crypto/rand"
	"encoding/json"
	"flag"
	"log"
	"time"

	"github.com/gorilla/websocket"
	"github.com/joho/godotenv"
)

// livetester 手动验证实时反馈通道：连接 WebSocket，按固定间隔发送随机
// 音频分片并打印每条实时反馈事件。
func main() {
	log.SetFlags(log.LstdFlags | log.Lmicroseconds)

	if err := godotenv.Load(); err != nil {
		log.Printf("[WARN] 无法加载 .env，改用系统环境变量: %v", err)
	}

	url := flag.String("url", "ws://localhost:8080/api/live/ws", "实时反馈 WebSocket 地址")
	chunks := flag.Int("chunks", 5, "发送的音频分片数量")
	size := flag.Int("size", 4096, "单个分片的字节数")
	interval := flag.Duration("interval", 500*time.Millisecond, "分片发送间隔")
	timeout := flag.Duration("timeout", 15*time.Second, "整体超时时间")

	flag.Parse()

	if *chunks < 1 {
		log.Fatal("分片数量必须至少为 1")
	}

	conn, _, err := websocket.DefaultDialer.Dial(*url, nil)
	if err != nil {
		log.Fatalf("连接失败: %v", err)
	}
	defer conn.Close()

	log.Printf("已连接 %s，发送 %d 个分片", *url, *chunks)

	deadline := time.Now().Add(*timeout)
	conn.SetReadDeadline(deadline)

	received := make(chan struct{})
	go func() {
		defer close(received)
		for i := 0; i < *chunks+1; i++ { // +1 为连接确认消息
			var msg struct {
				Type      string          `json:"type"`
				Data      json.RawMessage `json:"data"`
				Timestamp int64           `json:"timestamp"`
			}
			if err := conn.ReadJSON(&msg); err != nil {
				log.Printf("读取结束: %v", err)
				return
			}
			log.Printf("收到事件 type=%s data=%s", msg.Type, msg.Data)
		}
	}()

	for i := 0; i < *chunks; i++ {
		payload := make([]byte, *size)
		if _, err := rand.Read(payload); err != nil {
			log.Fatalf("生成随机分片失败: %v", err)
		}

		msg := map[string]any{
			"type": "audio_chunk",
			"data": map[string]any{
				"audioData":  payload,
				"chunkIndex": i,
				"isFinal":    i == *chunks-1,
			},
			"timestamp": time.Now().Unix(),
		}
		if err := conn.WriteJSON(msg); err != nil {
			log.Fatalf("发送分片 %d 失败: %v", i, err)
		}

		time.Sleep(*interval)
	}

	select {
	case <-received:
	case <-time.After(time.Until(deadline)):
		log.Println("等待反馈超时")
	}

	log.Println("测试完成")
}
