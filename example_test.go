package sender_test

import (
	"bufio"
	"context"
	"fmt"
	sender "github.com/itzg/agent-line-sender"
	"log"
	"net"
)

// agent prints every line it receives on the first connection until the client closes it.
type agent struct {
	listener net.Listener
	finished chan struct{}
}

func startAgent() *agent {
	listener, err := net.Listen("tcp", "127.0.0.1:")
	if err != nil {
		log.Fatal(err)
	}
	a := &agent{listener: listener, finished: make(chan struct{})}
	go a.serve()
	return a
}

func (a *agent) serve() {
	defer close(a.finished)
	defer a.listener.Close()

	conn, err := a.listener.Accept()
	if err != nil {
		log.Fatal(err)
	}
	defer conn.Close()

	scanner := bufio.NewScanner(conn)
	for scanner.Scan() {
		fmt.Println("received:", scanner.Text())
	}
}

func Example_reporting() {
	a := startAgent()

	client, _ := sender.NewClient(context.Background(), sender.Config{Endpoint: a.listener.Addr().String()})

	metric, _ := sender.NewBuilder().
		ApplicationName("testApplication").
		MetricName("testMetric").
		Timestamp(1700000000).
		Value("testValue").
		AddTag("tag", "t1").
		Build()
	client.Report(metric)

	metric2, _ := sender.NewBuilder().
		ApplicationName("testApplication").
		MetricName("testMetric").
		Timestamp(1700000001).
		Value("otherValue").
		Build()
	client.ReportAll([]*sender.Metric{metric2})

	client.Close()
	<-a.finished

	//Output:
	//received: testApplication testMetric testValue 1700000000
	//received: testApplication testMetric otherValue 1700000001
}
