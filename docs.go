/*

Package sender provides a client that reports metrics to a monitoring agent over TCP.

Each metric is written as one line of the agent's plaintext protocol:

	<applicationName> <metricName> <value> <timestamp>\n

The client connects on the first report and keeps the connection for later
reports, reconnecting when the agent has closed it. ReportAll sends a batch over
a single connection. Nothing is acknowledged by the agent and failed writes are
not retried.

Example

The following would report a metric to an agent listening on localhost:9001:

	client, err := sender.NewClient(context.Background(), sender.Config{})
	defer client.Close()

	metric, err := sender.NewBuilder().
		ApplicationName("testApplication").
		MetricName("testMetric").
		Time(time.Now()).
		Value("testValue").
		Build()
	err = client.Report(metric)

*/
package sender
